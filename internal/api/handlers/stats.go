package handlers

import (
	"net/http"
	"ride-dispatch-service/internal/api/dto"
	"ride-dispatch-service/internal/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Service *services.RideService
}

func (h *StatsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromStats(h.Service.FleetID(), h.Service.OperatorName(), h.Service.Stats()))
}
