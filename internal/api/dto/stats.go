package dto

import "ride-dispatch-service/internal/services"

type StatsResponse struct {
	FleetID              string  `json:"fleet_id"`
	Operator             string  `json:"operator"`
	VehiclesManaged      int     `json:"vehicles_managed"`
	PassengersRegistered int     `json:"passengers_registered"`
	RidesRequested       int     `json:"rides_requested"`
	RidesDispatched      int     `json:"rides_dispatched"`
	DispatchFailures     int     `json:"dispatch_failures"`
	RidesStarted         int     `json:"rides_started"`
	RidesCompleted       int     `json:"rides_completed"`
	RidesCancelled       int     `json:"rides_cancelled"`
	ActiveRides          int     `json:"active_rides"`
	CompletedDistanceKm  float64 `json:"completed_distance_km"`
}

func FromStats(fleetID, operator string, s services.Stats) StatsResponse {
	return StatsResponse{
		FleetID:              fleetID,
		Operator:             operator,
		VehiclesManaged:      s.VehiclesManaged,
		PassengersRegistered: s.PassengersRegistered,
		RidesRequested:       s.RidesRequested,
		RidesDispatched:      s.RidesDispatched,
		DispatchFailures:     s.DispatchFailures,
		RidesStarted:         s.RidesStarted,
		RidesCompleted:       s.RidesCompleted,
		RidesCancelled:       s.RidesCancelled,
		ActiveRides:          s.ActiveRides(),
		CompletedDistanceKm:  s.CompletedDistanceKm,
	}
}
