package ports

import (
	"context"
	"ride-dispatch-service/internal/domain"
)

// Port: a boundary for persisting Ride records.
type RideRepository interface {
	// Insert or replace a ride keyed by its ID.
	SaveRide(ctx context.Context, ride *domain.Ride) error
	// Return the ride with the given ID, or an error wrapping domain.ErrRideNotFound.
	GetRide(ctx context.Context, id string) (*domain.Ride, error)
	// Return all rides ordered by request time.
	ListRides(ctx context.Context) ([]*domain.Ride, error)
}
