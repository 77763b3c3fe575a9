package handlers

import (
	"net/http"
	"ride-dispatch-service/internal/api/dto"
	"ride-dispatch-service/internal/services"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PassengerHandler struct {
	Service *services.RideService
	Log     *zap.Logger
}

// Create registers a passenger with the service's fleet.
func (h *PassengerHandler) Create(c *gin.Context) {
	var req dto.CreatePassengerRequest
	if !decodeJSON(c, &req) {
		return
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeError(c, http.StatusBadRequest, "id is required")
		return
	}

	p, err := h.Service.NewPassenger(id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Phone))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromPassenger(p))
}

func (h *PassengerHandler) Get(c *gin.Context) {
	p, err := h.Service.Passenger(c.Param("id"))
	if err != nil {
		writeServiceError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPassenger(p))
}
