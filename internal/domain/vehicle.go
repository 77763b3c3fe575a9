package domain

import (
	"fmt"
	"slices"
)

// VehicleKind tags the vehicle variant; Drive and the driver/sensor
// operations dispatch on it.
type VehicleKind string

const (
	KindStandard VehicleKind = "standard"
	KindTaxi     VehicleKind = "taxi"
	KindRoboTaxi VehicleKind = "robotaxi"
)

func ParseVehicleKind(s string) (VehicleKind, error) {
	switch k := VehicleKind(s); k {
	case KindStandard, KindTaxi, KindRoboTaxi:
		return k, nil
	case "":
		return KindStandard, nil
	}
	return "", fmt.Errorf("invalid vehicle kind: %q", s)
}

// Vehicle follows at most one Route and carries up to MaxPassengers.
//
// Invariant: PassengerCount() <= MaxPassengers. SetRoute and ClearRoute keep
// status in step with route presence, but SetStatus can break the association.
type Vehicle struct {
	ID            string
	Kind          VehicleKind
	MaxPassengers int

	location   Location
	status     VehicleStatus
	route      *Route
	passengers []*Passenger

	driver  *Driver   // taxi only
	sensors []*Sensor // robotaxi only
}

func NewVehicle(id string, loc Location, maxPassengers int) *Vehicle {
	return newVehicle(id, KindStandard, loc, maxPassengers)
}

func NewTaxi(id string, loc Location, maxPassengers int) *Vehicle {
	return newVehicle(id, KindTaxi, loc, maxPassengers)
}

func NewRoboTaxi(id string, loc Location, maxPassengers int) *Vehicle {
	return newVehicle(id, KindRoboTaxi, loc, maxPassengers)
}

func newVehicle(id string, kind VehicleKind, loc Location, maxPassengers int) *Vehicle {
	if maxPassengers < 0 {
		maxPassengers = 0
	}
	return &Vehicle{
		ID:            id,
		Kind:          kind,
		MaxPassengers: maxPassengers,
		location:      loc,
		status:        StatusIdle,
	}
}

func (v *Vehicle) Location() Location { return v.location }

func (v *Vehicle) UpdateLocation(loc Location) { v.location = loc }

func (v *Vehicle) Status() VehicleStatus { return v.status }

func (v *Vehicle) SetStatus(s VehicleStatus) { v.status = s }

func (v *Vehicle) Route() *Route { return v.route }

func (v *Vehicle) HasRoute() bool { return v.route != nil }

// SetRoute assigns the route to follow. A non-nil route moves the vehicle
// to EN_ROUTE; nil only detaches the route.
func (v *Vehicle) SetRoute(r *Route) {
	v.route = r
	if r != nil {
		v.status = StatusEnRoute
	}
}

// ClearRoute detaches the route and returns the vehicle to IDLE.
func (v *Vehicle) ClearRoute() {
	v.route = nil
	v.status = StatusIdle
}

func (v *Vehicle) PassengerCount() int { return len(v.passengers) }

// Passengers returns a copy of the current passenger list.
func (v *Vehicle) Passengers() []*Passenger {
	return slices.Clone(v.passengers)
}

func (v *Vehicle) IsAboard(p *Passenger) bool {
	return slices.Contains(v.passengers, p)
}

// Board a single passenger and point the passenger back at this vehicle.
// A full vehicle, or a passenger riding another vehicle, leaves all state untouched.
func (v *Vehicle) PickupPassenger(p *Passenger) error {
	if v.IsAboard(p) {
		return fmt.Errorf("pickup passenger %s: vehicle %s: %w", p.ID, v.ID, ErrPassengerAlreadyAboard)
	}
	if p.vehicleID != "" && p.vehicleID != v.ID {
		return fmt.Errorf("pickup passenger %s: aboard vehicle %s: %w", p.ID, p.vehicleID, ErrPassengerAlreadyAboard)
	}
	if len(v.passengers) >= v.MaxPassengers {
		return fmt.Errorf(
			"pickup passenger %s: vehicle %s (capacity=%d): %w",
			p.ID, v.ID, v.MaxPassengers, ErrVehicleFull,
		)
	}

	v.passengers = append(v.passengers, p)
	p.vehicleID = v.ID
	return nil
}

// Remove a passenger and clear the passenger's vehicle reference.
func (v *Vehicle) DropoffPassenger(p *Passenger) error {
	idx := slices.Index(v.passengers, p)
	if idx < 0 {
		return fmt.Errorf("dropoff passenger %s: vehicle %s: %w", p.ID, v.ID, ErrPassengerNotAboard)
	}

	v.passengers = slices.Delete(v.passengers, idx, idx+1)
	if p.vehicleID == v.ID {
		p.vehicleID = ""
	}
	return nil
}

func (v *Vehicle) Driver() *Driver { return v.driver }

func (v *Vehicle) AssignDriver(d *Driver) error {
	if v.Kind != KindTaxi {
		return fmt.Errorf("assign driver: vehicle %s is %s: %w", v.ID, v.Kind, ErrUnsupportedKind)
	}
	v.driver = d
	return nil
}

// RemoveDriver detaches the driver, returning the one removed (nil if none).
func (v *Vehicle) RemoveDriver() *Driver {
	d := v.driver
	v.driver = nil
	return d
}

func (v *Vehicle) Sensors() []*Sensor { return slices.Clone(v.sensors) }

func (v *Vehicle) AddSensor(s *Sensor) error {
	if v.Kind != KindRoboTaxi {
		return fmt.Errorf("add sensor: vehicle %s is %s: %w", v.ID, v.Kind, ErrUnsupportedKind)
	}
	v.sensors = append(v.sensors, s)
	return nil
}

// DriveReport describes one Drive step.
type DriveReport struct {
	VehicleID  string
	Kind       VehicleKind
	DriverName string
	RouteID    string
	Readings   []SensorReading
}

// Drive performs one drive step according to the vehicle kind:
// a taxi needs a driver, a robotaxi polls every attached sensor.
// Drive never changes vehicle status.
func (v *Vehicle) Drive() (DriveReport, error) {
	report := DriveReport{VehicleID: v.ID, Kind: v.Kind}
	if v.route != nil {
		report.RouteID = v.route.ID()
	}

	switch v.Kind {
	case KindTaxi:
		if v.driver == nil {
			return DriveReport{}, fmt.Errorf("drive taxi %s: %w", v.ID, ErrNoDriver)
		}
		report.DriverName = v.driver.Name
	case KindRoboTaxi:
		report.Readings = make([]SensorReading, 0, len(v.sensors))
		for _, s := range v.sensors {
			report.Readings = append(report.Readings, s.ReadData())
		}
	}

	return report, nil
}
