package ports

import (
	"context"
	"ride-dispatch-service/internal/domain"
)

// Last known vehicle positions, shared with consumers outside the process.
type VehicleLocationCache interface {
	PutLocation(ctx context.Context, vehicleID string, loc domain.Location) error
	// Return the cached location and whether it was present.
	GetLocation(ctx context.Context, vehicleID string) (domain.Location, bool, error)
}
