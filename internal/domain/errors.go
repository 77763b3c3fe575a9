package domain

import "errors"

var (
	ErrInvalidLocation = errors.New("invalid location")

	// Capacity exceeded on pickup.
	ErrVehicleFull = errors.New("vehicle is at full passenger capacity")

	ErrPassengerAlreadyAboard = errors.New("passenger is already aboard")
	ErrPassengerNotAboard     = errors.New("passenger is not aboard")

	// Taxi asked to drive without an assigned driver.
	ErrNoDriver = errors.New("taxi has no assigned driver")

	// Kind-specific operation (driver, sensors) called on the wrong vehicle kind.
	ErrUnsupportedKind = errors.New("operation not supported for vehicle kind")

	ErrNoVehicleAvailable = errors.New("no available vehicle")
	ErrNoFleet            = errors.New("passenger is not associated with any fleet")

	ErrRideNotFound      = errors.New("ride not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")

	ErrPassengerExists  = errors.New("passenger already registered")
	ErrActiveRideExists = errors.New("passenger already has an active ride")

	ErrInvalidTransition = errors.New("invalid ride status transition")
)
