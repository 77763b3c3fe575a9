package domain

// Passenger requests rides from exactly one fleet.
//
// The passenger never holds the vehicle itself: it keeps the vehicle ID and
// resolves it through the fleet, so Vehicle -> Passenger is the only
// pointer in the pair.
type Passenger struct {
	ID    string
	Name  string
	Phone string

	fleet     *Fleet
	vehicleID string
}

func NewPassenger(id, name, phone string, fleet *Fleet) *Passenger {
	return &Passenger{ID: id, Name: name, Phone: phone, fleet: fleet}
}

func (p *Passenger) Fleet() *Fleet { return p.fleet }

// CurrentVehicleID returns the ID of the vehicle carrying the passenger.
func (p *Passenger) CurrentVehicleID() (string, bool) {
	return p.vehicleID, p.vehicleID != ""
}

// CurrentVehicle resolves the vehicle handle through the passenger's fleet.
// It reports false when the passenger is not aboard or the vehicle has
// since left the fleet.
func (p *Passenger) CurrentVehicle() (*Vehicle, bool) {
	if p.vehicleID == "" || p.fleet == nil {
		return nil, false
	}
	return p.fleet.Vehicle(p.vehicleID)
}

// RequestRide asks the passenger's fleet to dispatch a vehicle. It does not
// board the passenger; that happens on Vehicle.PickupPassenger.
func (p *Passenger) RequestRide(pickup, dropoff Location) (*Vehicle, error) {
	if p.fleet == nil {
		return nil, ErrNoFleet
	}
	return p.fleet.DispatchVehicle(pickup, dropoff)
}
