package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"ride-dispatch-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// decodeJSON accepts exactly one JSON object with no unknown fields.
func decodeJSON(c *gin.Context, v any) bool {
	dec := json.NewDecoder(c.Request.Body)
	defer c.Request.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(c, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRideNotFound),
		errors.Is(err, domain.ErrPassengerNotFound),
		errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoFleet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoVehicleAvailable),
		errors.Is(err, domain.ErrVehicleFull),
		errors.Is(err, domain.ErrPassengerAlreadyAboard),
		errors.Is(err, domain.ErrPassengerNotAboard),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoDriver),
		errors.Is(err, domain.ErrUnsupportedKind),
		errors.Is(err, domain.ErrPassengerExists),
		errors.Is(err, domain.ErrActiveRideExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		writeError(c, status, "internal server error")
		return
	}
	writeError(c, status, err.Error())
}
