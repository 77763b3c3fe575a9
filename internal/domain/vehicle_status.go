package domain

import "fmt"

// VehicleStatus is the operational status of a vehicle.
type VehicleStatus string

const (
	StatusIdle         VehicleStatus = "IDLE"           // available, not assigned
	StatusInService    VehicleStatus = "IN_SERVICE"     // actively serving passengers
	StatusEnRoute      VehicleStatus = "EN_ROUTE"       // traveling to pickup or destination
	StatusCharging     VehicleStatus = "CHARGING"       // at a charging station
	StatusMaintenance  VehicleStatus = "MAINTENANCE"    // undergoing maintenance
	StatusOutOfService VehicleStatus = "OUT_OF_SERVICE" // not operational
)

var vehicleStatuses = map[VehicleStatus]struct{}{
	StatusIdle:         {},
	StatusInService:    {},
	StatusEnRoute:      {},
	StatusCharging:     {},
	StatusMaintenance:  {},
	StatusOutOfService: {},
}

// IsValid returns true if the status is a recognized vehicle status.
func (s VehicleStatus) IsValid() bool {
	_, ok := vehicleStatuses[s]
	return ok
}

func (s VehicleStatus) String() string {
	if !s.IsValid() {
		return "UNKNOWN"
	}
	return string(s)
}

// ParseVehicleStatus converts a string to a VehicleStatus, returning an error if invalid.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	status := VehicleStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid vehicle status: %q", s)
	}
	return status, nil
}
