package api

import (
	"net/http"
	"ride-dispatch-service/internal/api/handlers"
	"ride-dispatch-service/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.RideService, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(recovery(log), requestID(), accessLog(log))

	vehicles := &handlers.VehicleHandler{Service: svc, Log: log}
	passengers := &handlers.PassengerHandler{Service: svc, Log: log}
	rides := &handlers.RideHandler{Service: svc, Log: log}
	stats := &handlers.StatsHandler{Service: svc}

	r.GET("/health", handlers.Health)
	r.GET("/stats", stats.Get)

	v := r.Group("/vehicles")
	{
		v.GET("", vehicles.List)
		v.GET("/:id", vehicles.Get)
		v.POST("/:id/drive", vehicles.Drive)
		v.GET("/:id/location", vehicles.Location)
		v.PUT("/:id/location", vehicles.UpdateLocation)
	}

	p := r.Group("/passengers")
	{
		p.POST("", passengers.Create)
		p.GET("/:id", passengers.Get)
	}

	rd := r.Group("/rides")
	{
		rd.POST("", rides.Request)
		rd.GET("", rides.List)
		rd.GET("/:id", rides.Get)
		rd.GET("/:id/plan", rides.Plan)
		rd.POST("/:id/start", rides.Start)
		rd.POST("/:id/complete", rides.Complete)
		rd.POST("/:id/cancel", rides.Cancel)
	}

	return r
}
