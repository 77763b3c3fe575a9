package handlers

import (
	"net/http"
	"ride-dispatch-service/internal/api/dto"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	Service *services.RideService
	Log     *zap.Logger
}

// List returns every vehicle, or only those in ?status= when given.
func (h *VehicleHandler) List(c *gin.Context) {
	var vehicles []services.VehicleSnapshot

	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseVehicleStatus(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}

		if status == domain.StatusIdle {
			vehicles = h.Service.AvailableVehicles()
		} else {
			for _, v := range h.Service.Vehicles() {
				if v.Status == status {
					vehicles = append(vehicles, v)
				}
			}
		}
	} else {
		vehicles = h.Service.Vehicles()
	}

	res := dto.ListVehicleResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.FromVehicle(v))
	}
	c.JSON(http.StatusOK, res)
}

func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.Service.Vehicle(c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromVehicle(v))
}

func (h *VehicleHandler) Drive(c *gin.Context) {
	report, err := h.Service.DriveVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromDriveReport(report))
}

// Location reads the last known position, preferring the location cache.
func (h *VehicleHandler) Location(c *gin.Context) {
	id := c.Param("id")
	loc, err := h.Service.VehicleLocation(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.VehicleLocationResponse{VehicleID: id, Location: dto.FromLocation(loc)})
}

func (h *VehicleHandler) UpdateLocation(c *gin.Context) {
	var req dto.UpdateLocationRequest
	if !decodeJSON(c, &req) {
		return
	}

	loc, ok := req.ToDomain()
	if !ok {
		writeError(c, http.StatusBadRequest, "lat and lon are required")
		return
	}

	id := c.Param("id")
	if err := h.Service.UpdateVehicleLocation(c.Request.Context(), id, loc); err != nil {
		writeServiceError(c, h.Log, err)
		return
	}

	v, err := h.Service.Vehicle(id)
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromVehicle(v))
}
