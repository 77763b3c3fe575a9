package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"ride-dispatch-service/internal/domain"
	"testing"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrRideNotFound, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", domain.ErrVehicleNotFound), http.StatusNotFound},
		{domain.ErrInvalidLocation, http.StatusBadRequest},
		{domain.ErrNoFleet, http.StatusUnprocessableEntity},
		{domain.ErrNoVehicleAvailable, http.StatusConflict},
		{domain.ErrVehicleFull, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusConflict},
		{domain.ErrNoDriver, http.StatusConflict},
		{fmt.Errorf("request ride: %w", domain.ErrActiveRideExists), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
