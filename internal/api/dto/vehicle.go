package dto

import (
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"
)

type DriverResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	LicenseNumber string  `json:"license_number"`
	Rating        float32 `json:"rating"`
}

type SensorResponse struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Position  [3]float64 `json:"position"`
	ReadCount int        `json:"read_count"`
}

type RouteResponse struct {
	ID         string     `json:"id"`
	Waypoints  []Location `json:"waypoints"`
	DistanceKm float64    `json:"distance_km"`
}

type VehicleResponse struct {
	ID            string           `json:"id"`
	Kind          string           `json:"kind"`
	Status        string           `json:"status"`
	Location      Location         `json:"location"`
	MaxPassengers int              `json:"max_passengers"`
	PassengerIDs  []string         `json:"passenger_ids"`
	Route         *RouteResponse   `json:"route,omitempty"`
	Driver        *DriverResponse  `json:"driver,omitempty"`
	Sensors       []SensorResponse `json:"sensors,omitempty"`
}

type ListVehicleResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

type UpdateLocationRequest struct {
	Location
}

type VehicleLocationResponse struct {
	VehicleID string   `json:"vehicle_id"`
	Location  Location `json:"location"`
}

type SensorReadingResponse struct {
	SensorID string  `json:"sensor_id"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
}

type DriveResponse struct {
	VehicleID  string                  `json:"vehicle_id"`
	Kind       string                  `json:"kind"`
	DriverName string                  `json:"driver_name,omitempty"`
	RouteID    string                  `json:"route_id,omitempty"`
	Readings   []SensorReadingResponse `json:"readings,omitempty"`
}

func FromVehicle(v services.VehicleSnapshot) VehicleResponse {
	res := VehicleResponse{
		ID:            v.ID,
		Kind:          string(v.Kind),
		Status:        v.Status.String(),
		Location:      FromLocation(v.Location),
		MaxPassengers: v.MaxPassengers,
		PassengerIDs:  v.PassengerIDs,
	}
	if res.PassengerIDs == nil {
		res.PassengerIDs = []string{}
	}

	if v.RouteID != "" {
		res.Route = &RouteResponse{
			ID:         v.RouteID,
			Waypoints:  FromLocations(v.Waypoints),
			DistanceKm: v.RouteDistanceKm,
		}
	}

	if v.Driver != nil {
		res.Driver = &DriverResponse{
			ID:            v.Driver.ID,
			Name:          v.Driver.Name,
			LicenseNumber: v.Driver.LicenseNumber,
			Rating:        v.Driver.Rating,
		}
	}

	for _, s := range v.Sensors {
		res.Sensors = append(res.Sensors, SensorResponse{
			ID:        s.ID,
			Type:      string(s.Type),
			Position:  [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
			ReadCount: s.ReadCount,
		})
	}

	return res
}

func FromDriveReport(r domain.DriveReport) DriveResponse {
	res := DriveResponse{
		VehicleID:  r.VehicleID,
		Kind:       string(r.Kind),
		DriverName: r.DriverName,
		RouteID:    r.RouteID,
	}
	for _, rd := range r.Readings {
		res.Readings = append(res.Readings, SensorReadingResponse{
			SensorID: rd.SensorID,
			Type:     string(rd.Type),
			Value:    rd.Value,
		})
	}
	return res
}
