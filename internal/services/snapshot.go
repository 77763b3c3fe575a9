package services

import (
	"ride-dispatch-service/internal/domain"
)

// VehicleSnapshot is a point-in-time copy of a vehicle, safe to read
// without holding the service lock.
type VehicleSnapshot struct {
	ID              string
	Kind            domain.VehicleKind
	Status          domain.VehicleStatus
	Location        domain.Location
	MaxPassengers   int
	PassengerIDs    []string
	RouteID         string
	Waypoints       []domain.Location
	RouteDistanceKm float64
	Driver          *domain.Driver
	Sensors         []SensorSnapshot
}

type SensorSnapshot struct {
	ID        string
	Type      domain.SensorType
	Position  domain.Position
	ReadCount int
}

type PassengerSnapshot struct {
	ID        string
	Name      string
	Phone     string
	FleetID   string
	VehicleID string
}

func snapshotVehicle(v *domain.Vehicle) VehicleSnapshot {
	snap := VehicleSnapshot{
		ID:            v.ID,
		Kind:          v.Kind,
		Status:        v.Status(),
		Location:      v.Location(),
		MaxPassengers: v.MaxPassengers,
	}

	for _, p := range v.Passengers() {
		snap.PassengerIDs = append(snap.PassengerIDs, p.ID)
	}

	if r := v.Route(); r != nil {
		snap.RouteID = r.ID()
		snap.Waypoints = r.Waypoints()
		snap.RouteDistanceKm = r.Distance()
	}

	if d := v.Driver(); d != nil {
		c := *d
		snap.Driver = &c
	}

	for _, s := range v.Sensors() {
		snap.Sensors = append(snap.Sensors, SensorSnapshot{
			ID:        s.ID,
			Type:      s.Type,
			Position:  s.Position,
			ReadCount: s.ReadCount(),
		})
	}

	return snap
}

func snapshotVehicles(vs []*domain.Vehicle) []VehicleSnapshot {
	out := make([]VehicleSnapshot, 0, len(vs))
	for _, v := range vs {
		out = append(out, snapshotVehicle(v))
	}
	return out
}

func snapshotPassenger(p *domain.Passenger) PassengerSnapshot {
	snap := PassengerSnapshot{ID: p.ID, Name: p.Name, Phone: p.Phone}
	if f := p.Fleet(); f != nil {
		snap.FleetID = f.ID
	}
	snap.VehicleID, _ = p.CurrentVehicleID()
	return snap
}
