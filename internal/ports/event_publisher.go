package ports

import (
	"context"
	"time"
)

const (
	EventRideDispatched = "RIDE_DISPATCHED"
	EventRideStarted    = "RIDE_STARTED"
	EventRideCompleted  = "RIDE_COMPLETED"
	EventRideCancelled  = "RIDE_CANCELLED"
	EventDispatchFailed = "DISPATCH_FAILED"
)

// RideEvent is the payload emitted on every ride state change.
type RideEvent struct {
	Type        string    `json:"type"`
	RideID      string    `json:"ride_id,omitempty"`
	VehicleID   string    `json:"vehicle_id,omitempty"`
	PassengerID string    `json:"passenger_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Message     string    `json:"message,omitempty"`
}

// Contract for announcing ride state changes.
type EventPublisher interface {
	Publish(ctx context.Context, event RideEvent) error
}
