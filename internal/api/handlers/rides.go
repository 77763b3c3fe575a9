package handlers

import (
	"context"
	"net/http"
	"ride-dispatch-service/internal/api/dto"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RideHandler struct {
	Service *services.RideService
	Log     *zap.Logger
}

func (h *RideHandler) Request(c *gin.Context) {
	var req dto.RequestRideRequest
	if !decodeJSON(c, &req) {
		return
	}

	passengerID := strings.TrimSpace(req.PassengerID)
	if passengerID == "" {
		writeError(c, http.StatusBadRequest, "passenger_id is required")
		return
	}
	pickup, ok := req.Pickup.ToDomain()
	if !ok {
		writeError(c, http.StatusBadRequest, "pickup lat and lon are required")
		return
	}
	dropoff, ok := req.Dropoff.ToDomain()
	if !ok {
		writeError(c, http.StatusBadRequest, "dropoff lat and lon are required")
		return
	}

	ride, err := h.Service.RequestRide(c.Request.Context(), passengerID, pickup, dropoff)
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromRide(ride))
}

func (h *RideHandler) List(c *gin.Context) {
	rides, err := h.Service.Rides(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}

	res := dto.ListRideResponse{Rides: make([]dto.RideResponse, 0, len(rides))}
	for _, r := range rides {
		res.Rides = append(res.Rides, dto.FromRide(r))
	}
	c.JSON(http.StatusOK, res)
}

func (h *RideHandler) Get(c *gin.Context) {
	ride, err := h.Service.Ride(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRide(ride))
}

func (h *RideHandler) Plan(c *gin.Context) {
	plan, err := h.Service.TripPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTripPlan(plan))
}

func (h *RideHandler) Start(c *gin.Context)    { h.transition(c, h.Service.StartRide) }
func (h *RideHandler) Complete(c *gin.Context) { h.transition(c, h.Service.CompleteRide) }
func (h *RideHandler) Cancel(c *gin.Context)   { h.transition(c, h.Service.CancelRide) }

func (h *RideHandler) transition(c *gin.Context, fn func(context.Context, string) (*domain.Ride, error)) {
	ride, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromRide(ride))
}
