package dto

import "ride-dispatch-service/internal/services"

type CreatePassengerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type PassengerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	FleetID   string `json:"fleet_id,omitempty"`
	VehicleID string `json:"vehicle_id,omitempty"`
}

func FromPassenger(p services.PassengerSnapshot) PassengerResponse {
	return PassengerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		FleetID:   p.FleetID,
		VehicleID: p.VehicleID,
	}
}
