package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the current state of a ride in its lifecycle.
type RideStatus string

const (
	RideDispatched RideStatus = "dispatched"
	RideInProgress RideStatus = "in_progress"
	RideCompleted  RideStatus = "completed"
	RideCancelled  RideStatus = "cancelled"
)

var rideTransitions = map[RideStatus][]RideStatus{
	RideDispatched: {RideInProgress, RideCancelled},
	RideInProgress: {RideCompleted, RideCancelled},
	RideCompleted:  {},
	RideCancelled:  {},
}

func (s RideStatus) IsValid() bool {
	_, ok := rideTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s RideStatus) CanTransitionTo(target RideStatus) bool {
	for _, t := range rideTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s RideStatus) IsTerminal() bool {
	return len(rideTransitions[s]) == 0
}

func ParseRideStatus(s string) (RideStatus, error) {
	status := RideStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ride status: %q", s)
	}
	return status, nil
}

// Ride records one dispatch from request to completion or cancellation.
// The Vehicle and Passenger are referenced by ID only.
type Ride struct {
	ID          string
	PassengerID string
	VehicleID   string
	RouteID     string
	Pickup      Location
	Dropoff     Location
	DistanceKm  float64
	Status      RideStatus
	RequestedAt time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// NewRide records a freshly dispatched vehicle for a passenger.
func NewRide(passengerID string, v *Vehicle, requestedAt time.Time) *Ride {
	r := &Ride{
		ID:          uuid.NewString(),
		PassengerID: passengerID,
		VehicleID:   v.ID,
		Status:      RideDispatched,
		RequestedAt: requestedAt,
	}

	if route := v.Route(); route != nil {
		r.RouteID = route.ID()
		r.DistanceKm = route.Distance()
		if wps := route.Waypoints(); len(wps) > 0 {
			r.Pickup = wps[0]
			r.Dropoff = wps[len(wps)-1]
		}
	}

	return r
}

func (r *Ride) transition(target RideStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return fmt.Errorf("ride %s: %s -> %s: %w", r.ID, r.Status, target, ErrInvalidTransition)
	}
	r.Status = target
	return nil
}

func (r *Ride) Start(at time.Time) error {
	if err := r.transition(RideInProgress); err != nil {
		return err
	}
	r.StartedAt = &at
	return nil
}

func (r *Ride) Complete(at time.Time) error {
	if err := r.transition(RideCompleted); err != nil {
		return err
	}
	r.CompletedAt = &at
	return nil
}

func (r *Ride) Cancel(at time.Time) error {
	if err := r.transition(RideCancelled); err != nil {
		return err
	}
	r.CancelledAt = &at
	return nil
}
