package dto

import (
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"
	"time"
)

type RequestRideRequest struct {
	PassengerID string   `json:"passenger_id"`
	Pickup      Location `json:"pickup"`
	Dropoff     Location `json:"dropoff"`
}

type RideResponse struct {
	ID          string     `json:"id"`
	PassengerID string     `json:"passenger_id"`
	VehicleID   string     `json:"vehicle_id"`
	RouteID     string     `json:"route_id"`
	Pickup      Location   `json:"pickup"`
	Dropoff     Location   `json:"dropoff"`
	DistanceKm  float64    `json:"distance_km"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type ListRideResponse struct {
	Rides []RideResponse `json:"rides"`
}

type TripStopResponse struct {
	Location Location  `json:"location"`
	LegKm    float64   `json:"leg_km"`
	ArriveAt time.Time `json:"arrive_at"`
}

type TripPlanResponse struct {
	VehicleID            string             `json:"vehicle_id"`
	RouteID              string             `json:"route_id"`
	DepartAt             time.Time          `json:"depart_at"`
	TotalKm              float64            `json:"total_km"`
	TotalDurationSeconds int                `json:"total_duration_seconds"`
	Stops                []TripStopResponse `json:"stops"`
}

func FromRide(r *domain.Ride) RideResponse {
	return RideResponse{
		ID:          r.ID,
		PassengerID: r.PassengerID,
		VehicleID:   r.VehicleID,
		RouteID:     r.RouteID,
		Pickup:      FromLocation(r.Pickup),
		Dropoff:     FromLocation(r.Dropoff),
		DistanceKm:  r.DistanceKm,
		Status:      string(r.Status),
		RequestedAt: r.RequestedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
		CancelledAt: r.CancelledAt,
	}
}

func FromTripPlan(p *services.TripPlan) TripPlanResponse {
	res := TripPlanResponse{
		VehicleID:            p.VehicleID,
		RouteID:              p.RouteID,
		DepartAt:             p.DepartAt,
		TotalKm:              p.TotalKm,
		TotalDurationSeconds: int(p.TotalDuration.Seconds()),
		Stops:                make([]TripStopResponse, 0, len(p.Stops)),
	}
	for _, s := range p.Stops {
		res.Stops = append(res.Stops, TripStopResponse{
			Location: FromLocation(s.Location),
			LegKm:    s.LegKm,
			ArriveAt: s.ArriveAt,
		})
	}
	return res
}
