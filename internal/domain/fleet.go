package domain

import (
	"slices"
)

// Fleet manages an ordered, non-exclusive collection of vehicles.
type Fleet struct {
	ID           string
	OperatorName string
	ServiceArea  []Location

	vehicles []*Vehicle
}

func NewFleet(id, operatorName string) *Fleet {
	return &Fleet{ID: id, OperatorName: operatorName}
}

func (f *Fleet) AddVehicle(v *Vehicle) {
	f.vehicles = append(f.vehicles, v)
}

// RemoveVehicle removes v and reports whether it was managed by the fleet.
func (f *Fleet) RemoveVehicle(v *Vehicle) bool {
	idx := slices.Index(f.vehicles, v)
	if idx < 0 {
		return false
	}
	f.vehicles = slices.Delete(f.vehicles, idx, idx+1)
	return true
}

func (f *Fleet) Vehicles() []*Vehicle { return slices.Clone(f.vehicles) }

// Vehicle looks up a managed vehicle by ID.
func (f *Fleet) Vehicle(id string) (*Vehicle, bool) {
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// AvailableVehicles returns the IDLE vehicles in managed order.
func (f *Fleet) AvailableVehicles() []*Vehicle {
	available := make([]*Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		if v.Status() == StatusIdle {
			available = append(available, v)
		}
	}
	return available
}

// DispatchVehicle assigns the first IDLE vehicle a new route [pickup, dropoff].
//
// Selection is deterministic (managed order), not load-balanced. When no
// vehicle is IDLE it returns ErrNoVehicleAvailable and no status changes.
func (f *Fleet) DispatchVehicle(pickup, dropoff Location) (*Vehicle, error) {
	available := f.AvailableVehicles()
	if len(available) == 0 {
		return nil, ErrNoVehicleAvailable
	}

	v := available[0]

	route := NewRoute("route_for_" + v.ID)
	route.AddWaypoint(pickup)
	route.AddWaypoint(dropoff)
	route.Optimize()

	v.SetRoute(route)
	v.SetStatus(StatusEnRoute)

	return v, nil
}
