package services

import (
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"time"
)

// Average urban speed used for arrival estimates.
const DefaultSpeedKmh = 30.0

// A TripStop is the arrival at one waypoint of a vehicle's route.
type TripStop struct {
	Location domain.Location
	LegKm    float64
	ArriveAt time.Time
}

// TripPlan estimates when a vehicle reaches each waypoint of its route.
// It is derived data and has no side effects on the vehicle.
type TripPlan struct {
	VehicleID     string
	RouteID       string
	DepartAt      time.Time
	Stops         []TripStop
	TotalKm       float64
	TotalDuration time.Duration
}

// PlanTrip walks the route in order from the vehicle's position, at a
// constant speed, accumulating straight-line leg distances.
func PlanTrip(
	vehicleID string,
	start domain.Location,
	route *domain.Route,
	departAt time.Time,
	speedKmh float64,
) (*TripPlan, error) {
	if route == nil {
		return nil, errors.New("plan trip: route must be non-nil")
	}
	if speedKmh <= 0 {
		return nil, fmt.Errorf("plan trip: speed must be positive, got %v", speedKmh)
	}

	plan := &TripPlan{
		VehicleID: vehicleID,
		RouteID:   route.ID(),
		DepartAt:  departAt,
		Stops:     make([]TripStop, 0, route.WaypointCount()),
	}

	current := start
	currentTime := departAt
	for _, wp := range route.Waypoints() {
		leg := current.DistanceTo(wp)
		travel := time.Duration(leg / speedKmh * float64(time.Hour)).Round(time.Second)

		currentTime = currentTime.Add(travel)
		plan.TotalKm += leg
		plan.TotalDuration += travel
		plan.Stops = append(plan.Stops, TripStop{Location: wp, LegKm: leg, ArriveAt: currentTime})

		current = wp
	}

	return plan, nil
}
