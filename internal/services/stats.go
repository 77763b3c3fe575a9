package services

// Stats holds the process-wide counters for one RideService.
type Stats struct {
	VehiclesManaged      int
	PassengersRegistered int
	RidesRequested       int
	RidesDispatched      int
	DispatchFailures     int
	RidesStarted         int
	RidesCompleted       int
	RidesCancelled       int
	CompletedDistanceKm  float64
}

// ActiveRides counts rides that were dispatched and not yet finished.
func (s Stats) ActiveRides() int {
	return s.RidesDispatched - s.RidesCompleted - s.RidesCancelled
}
