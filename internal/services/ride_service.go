package services

import (
	"context"
	"errors"
	"fmt"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/ports"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Maximum concurrent cache writes when syncing the whole fleet.
const syncWorkers = 5

// RideService coordinates dispatch for one fleet. The domain model is not
// safe for concurrent use, so every operation that touches it holds mu.
// Cache writes and event publishing happen after mu is released.
type RideService struct {
	mu         sync.Mutex
	fleet      *domain.Fleet
	passengers map[string]*domain.Passenger
	active     map[string]string // passenger ID -> non-terminal ride ID
	stats      Stats

	rides     ports.RideRepository
	locations ports.VehicleLocationCache
	events    ports.EventPublisher

	log      *zap.Logger
	now      func() time.Time
	speedKmh float64
}

type Option func(*RideService)

func WithLocationCache(c ports.VehicleLocationCache) Option {
	return func(s *RideService) { s.locations = c }
}

func WithEventPublisher(p ports.EventPublisher) Option {
	return func(s *RideService) { s.events = p }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *RideService) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *RideService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSpeed sets the average speed used by trip plans.
func WithSpeed(kmh float64) Option {
	return func(s *RideService) {
		if kmh > 0 {
			s.speedKmh = kmh
		}
	}
}

func NewRideService(fleet *domain.Fleet, rides ports.RideRepository, opts ...Option) (*RideService, error) {
	if fleet == nil {
		return nil, errors.New("new ride service: fleet must be non-nil")
	}
	if rides == nil {
		return nil, errors.New("new ride service: ride repository must be non-nil")
	}

	s := &RideService{
		fleet:      fleet,
		passengers: make(map[string]*domain.Passenger),
		active:     make(map[string]string),
		rides:      rides,
		log:        zap.NewNop(),
		now:        time.Now,
		speedKmh:   DefaultSpeedKmh,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stats.VehiclesManaged = len(fleet.Vehicles())

	return s, nil
}

func (s *RideService) FleetID() string { return s.fleet.ID }

func (s *RideService) OperatorName() string { return s.fleet.OperatorName }

// RegisterPassenger adds p to the registry. A passenger without a fleet is
// accepted; its ride requests fail with domain.ErrNoFleet.
func (s *RideService) RegisterPassenger(p *domain.Passenger) error {
	if p == nil || p.ID == "" {
		return errors.New("register passenger: passenger id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passengers[p.ID]; ok {
		return fmt.Errorf("register passenger %q: %w", p.ID, domain.ErrPassengerExists)
	}
	s.passengers[p.ID] = p
	s.stats.PassengersRegistered++

	return nil
}

// NewPassenger creates a passenger attached to this service's fleet and registers it.
func (s *RideService) NewPassenger(id, name, phone string) (PassengerSnapshot, error) {
	p := domain.NewPassenger(id, name, phone, s.fleet)
	if err := s.RegisterPassenger(p); err != nil {
		return PassengerSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotPassenger(p), nil
}

func (s *RideService) Passenger(id string) (PassengerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.passengers[id]
	if !ok {
		return PassengerSnapshot{}, fmt.Errorf("passenger %q: %w", id, domain.ErrPassengerNotFound)
	}
	return snapshotPassenger(p), nil
}

func (s *RideService) Vehicles() []VehicleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotVehicles(s.fleet.Vehicles())
}

func (s *RideService) AvailableVehicles() []VehicleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotVehicles(s.fleet.AvailableVehicles())
}

func (s *RideService) Vehicle(id string) (VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.fleet.Vehicle(id)
	if !ok {
		return VehicleSnapshot{}, fmt.Errorf("vehicle %q: %w", id, domain.ErrVehicleNotFound)
	}
	return snapshotVehicle(v), nil
}

// RequestRide dispatches the first idle vehicle of the passenger's fleet and
// records a dispatched ride. The passenger boards on StartRide. A passenger
// holds at most one dispatched or in-progress ride.
func (s *RideService) RequestRide(
	ctx context.Context,
	passengerID string,
	pickup, dropoff domain.Location,
) (*domain.Ride, error) {
	if err := pickup.Validate(); err != nil {
		return nil, fmt.Errorf("request ride: pickup: %w", err)
	}
	if err := dropoff.Validate(); err != nil {
		return nil, fmt.Errorf("request ride: dropoff: %w", err)
	}

	s.mu.Lock()
	p, ok := s.passengers[passengerID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("request ride: passenger %q: %w", passengerID, domain.ErrPassengerNotFound)
	}
	if rideID, ok := s.active[passengerID]; ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("request ride: passenger %q has ride %s: %w", passengerID, rideID, domain.ErrActiveRideExists)
	}
	s.stats.RidesRequested++

	v, err := p.RequestRide(pickup, dropoff)
	if err != nil {
		s.stats.DispatchFailures++
		s.mu.Unlock()

		s.log.Warn("dispatch failed",
			zap.String("passenger_id", passengerID),
			zap.Stringer("pickup", pickup),
			zap.Stringer("dropoff", dropoff),
			zap.Error(err),
		)
		s.publish(ctx, ports.RideEvent{
			Type:        ports.EventDispatchFailed,
			PassengerID: passengerID,
			OccurredAt:  s.now(),
			Message:     err.Error(),
		})
		return nil, fmt.Errorf("request ride: passenger %q: %w", passengerID, err)
	}

	ride := domain.NewRide(p.ID, v, s.now())
	if err := s.rides.SaveRide(ctx, ride); err != nil {
		v.ClearRoute()
		s.mu.Unlock()
		return nil, fmt.Errorf("request ride: %w", err)
	}
	s.active[p.ID] = ride.ID
	s.stats.RidesDispatched++
	s.mu.Unlock()

	s.log.Info("vehicle dispatched",
		zap.String("ride_id", ride.ID),
		zap.String("vehicle_id", ride.VehicleID),
		zap.String("passenger_id", ride.PassengerID),
		zap.Float64("distance_km", ride.DistanceKm),
	)
	s.publish(ctx, rideEvent(ports.EventRideDispatched, ride, ride.RequestedAt))

	return ride, nil
}

// StartRide moves the vehicle to the pickup point and boards the passenger.
// A full vehicle leaves the ride dispatched.
func (s *RideService) StartRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	s.mu.Lock()

	ride, v, p, err := s.loadRide(ctx, rideID, domain.RideInProgress)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("start ride: %w", err)
	}

	prevLoc := v.Location()
	v.UpdateLocation(ride.Pickup)
	if err := v.PickupPassenger(p); err != nil {
		v.UpdateLocation(prevLoc)
		s.mu.Unlock()

		s.log.Warn("pickup failed",
			zap.String("ride_id", ride.ID),
			zap.String("vehicle_id", v.ID),
			zap.Int("passengers", v.PassengerCount()),
			zap.Int("max_passengers", v.MaxPassengers),
			zap.Error(err),
		)
		return nil, fmt.Errorf("start ride %s: %w", ride.ID, err)
	}

	prevStatus := v.Status()
	v.SetStatus(domain.StatusInService)

	now := s.now()
	if err := ride.Start(now); err != nil {
		_ = v.DropoffPassenger(p)
		v.SetStatus(prevStatus)
		s.mu.Unlock()
		return nil, fmt.Errorf("start ride: %w", err)
	}
	if err := s.rides.SaveRide(ctx, ride); err != nil {
		_ = v.DropoffPassenger(p)
		v.SetStatus(prevStatus)
		v.UpdateLocation(prevLoc)
		s.mu.Unlock()
		return nil, fmt.Errorf("start ride: %w", err)
	}
	s.stats.RidesStarted++
	loc := v.Location()
	s.mu.Unlock()

	s.log.Info("ride started", zap.String("ride_id", ride.ID), zap.String("vehicle_id", v.ID))
	s.cacheLocation(ctx, v.ID, loc)
	s.publish(ctx, rideEvent(ports.EventRideStarted, ride, now))

	return ride, nil
}

// CompleteRide drops the passenger at the destination and returns the
// vehicle to IDLE.
func (s *RideService) CompleteRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	s.mu.Lock()

	ride, v, p, err := s.loadRide(ctx, rideID, domain.RideCompleted)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("complete ride: %w", err)
	}

	if err := v.DropoffPassenger(p); err != nil {
		s.mu.Unlock()
		s.log.Warn("dropoff failed",
			zap.String("ride_id", ride.ID),
			zap.String("vehicle_id", v.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("complete ride %s: %w", ride.ID, err)
	}

	now := s.now()
	if err := ride.Complete(now); err != nil {
		_ = v.PickupPassenger(p)
		s.mu.Unlock()
		return nil, fmt.Errorf("complete ride: %w", err)
	}
	if err := s.rides.SaveRide(ctx, ride); err != nil {
		_ = v.PickupPassenger(p)
		s.mu.Unlock()
		return nil, fmt.Errorf("complete ride: %w", err)
	}

	v.UpdateLocation(ride.Dropoff)
	v.ClearRoute()
	s.release(ride)
	s.stats.RidesCompleted++
	s.stats.CompletedDistanceKm += ride.DistanceKm
	loc := v.Location()
	s.mu.Unlock()

	s.log.Info("ride completed",
		zap.String("ride_id", ride.ID),
		zap.String("vehicle_id", v.ID),
		zap.Float64("distance_km", ride.DistanceKm),
	)
	s.cacheLocation(ctx, v.ID, loc)
	s.publish(ctx, rideEvent(ports.EventRideCompleted, ride, now))

	return ride, nil
}

// CancelRide abandons a dispatched or in-progress ride. The passenger is
// dropped where the vehicle stands and the vehicle returns to IDLE.
func (s *RideService) CancelRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	s.mu.Lock()

	ride, err := s.rides.GetRide(ctx, rideID)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("cancel ride: %w", err)
	}

	now := s.now()
	if err := ride.Cancel(now); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("cancel ride: %w", err)
	}
	if err := s.rides.SaveRide(ctx, ride); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("cancel ride: %w", err)
	}

	// The vehicle may have left the fleet since dispatch; the ride is
	// cancelled regardless.
	if v, ok := s.fleet.Vehicle(ride.VehicleID); ok {
		if p, ok := s.passengers[ride.PassengerID]; ok && v.IsAboard(p) {
			_ = v.DropoffPassenger(p)
		}
		if r := v.Route(); r != nil && r.ID() == ride.RouteID {
			v.ClearRoute()
		}
	} else {
		s.log.Warn("cancelled ride references unknown vehicle",
			zap.String("ride_id", ride.ID),
			zap.String("vehicle_id", ride.VehicleID),
		)
	}
	s.release(ride)
	s.stats.RidesCancelled++
	s.mu.Unlock()

	s.log.Info("ride cancelled", zap.String("ride_id", ride.ID), zap.String("vehicle_id", ride.VehicleID))
	s.publish(ctx, rideEvent(ports.EventRideCancelled, ride, now))

	return ride, nil
}

// DriveVehicle performs one drive step for the vehicle.
func (s *RideService) DriveVehicle(ctx context.Context, vehicleID string) (domain.DriveReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.fleet.Vehicle(vehicleID)
	if !ok {
		return domain.DriveReport{}, fmt.Errorf("drive vehicle %q: %w", vehicleID, domain.ErrVehicleNotFound)
	}

	report, err := v.Drive()
	if err != nil {
		s.log.Warn("drive failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		return domain.DriveReport{}, err
	}

	s.log.Debug("vehicle driving",
		zap.String("vehicle_id", vehicleID),
		zap.String("kind", string(report.Kind)),
		zap.String("driver", report.DriverName),
		zap.Int("sensor_readings", len(report.Readings)),
	)
	return report, nil
}

// UpdateVehicleLocation records a new position for the vehicle and mirrors
// it to the location cache when one is configured.
func (s *RideService) UpdateVehicleLocation(ctx context.Context, vehicleID string, loc domain.Location) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("update vehicle location: %w", err)
	}

	s.mu.Lock()
	v, ok := s.fleet.Vehicle(vehicleID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("update vehicle location %q: %w", vehicleID, domain.ErrVehicleNotFound)
	}
	v.UpdateLocation(loc)
	s.mu.Unlock()

	s.cacheLocation(ctx, vehicleID, loc)
	return nil
}

// SyncLocations writes every vehicle's position to the location cache.
func (s *RideService) SyncLocations(ctx context.Context) error {
	if s.locations == nil {
		return nil
	}

	s.mu.Lock()
	positions := make(map[string]domain.Location)
	for _, v := range s.fleet.Vehicles() {
		positions[v.ID] = v.Location()
	}
	s.mu.Unlock()

	sem := make(chan struct{}, syncWorkers)
	errCh := make(chan error, len(positions))
	var wg sync.WaitGroup

	for id, loc := range positions {
		wg.Add(1)
		go func(id string, loc domain.Location) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.locations.PutLocation(ctx, id, loc); err != nil {
				errCh <- fmt.Errorf("sync location %q: %w", id, err)
			}
		}(id, loc)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// VehicleLocation returns the cached position when available, falling back
// to the fleet's in-memory value.
func (s *RideService) VehicleLocation(ctx context.Context, vehicleID string) (domain.Location, error) {
	if s.locations != nil {
		loc, ok, err := s.locations.GetLocation(ctx, vehicleID)
		if err != nil {
			s.log.Warn("location cache read failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
		} else if ok {
			return loc, nil
		}
	}

	snap, err := s.Vehicle(vehicleID)
	if err != nil {
		return domain.Location{}, err
	}
	return snap.Location, nil
}

// TripPlan estimates arrival times for the vehicle serving an active ride.
func (s *RideService) TripPlan(ctx context.Context, rideID string) (*TripPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.rides.GetRide(ctx, rideID)
	if err != nil {
		return nil, fmt.Errorf("trip plan: %w", err)
	}
	if ride.Status.IsTerminal() {
		return nil, fmt.Errorf("trip plan: ride %s is %s: %w", ride.ID, ride.Status, domain.ErrInvalidTransition)
	}

	v, ok := s.fleet.Vehicle(ride.VehicleID)
	if !ok {
		return nil, fmt.Errorf("trip plan: vehicle %q: %w", ride.VehicleID, domain.ErrVehicleNotFound)
	}
	route := v.Route()
	if route == nil || route.ID() != ride.RouteID {
		return nil, fmt.Errorf("trip plan: vehicle %s is not following route %s: %w",
			v.ID, ride.RouteID, domain.ErrInvalidTransition)
	}

	plan, err := PlanTrip(v.ID, v.Location(), route, s.now(), s.speedKmh)
	if err != nil {
		return nil, fmt.Errorf("trip plan: %w", err)
	}
	return plan, nil
}

func (s *RideService) Ride(ctx context.Context, id string) (*domain.Ride, error) {
	ride, err := s.rides.GetRide(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ride: %w", err)
	}
	return ride, nil
}

func (s *RideService) Rides(ctx context.Context) ([]*domain.Ride, error) {
	rides, err := s.rides.ListRides(ctx)
	if err != nil {
		return nil, fmt.Errorf("rides: %w", err)
	}
	return rides, nil
}

func (s *RideService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// loadRide fetches a ride that can move to target along with its vehicle and
// passenger. The vehicle must still be following the ride's route. Caller holds mu.
func (s *RideService) loadRide(
	ctx context.Context,
	rideID string,
	target domain.RideStatus,
) (*domain.Ride, *domain.Vehicle, *domain.Passenger, error) {
	ride, err := s.rides.GetRide(ctx, rideID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !ride.Status.CanTransitionTo(target) {
		return nil, nil, nil, fmt.Errorf("ride %s: %s -> %s: %w", ride.ID, ride.Status, target, domain.ErrInvalidTransition)
	}

	v, ok := s.fleet.Vehicle(ride.VehicleID)
	if !ok {
		return nil, nil, nil, fmt.Errorf("ride %s: vehicle %q: %w", ride.ID, ride.VehicleID, domain.ErrVehicleNotFound)
	}
	if r := v.Route(); r == nil || r.ID() != ride.RouteID {
		return nil, nil, nil, fmt.Errorf("ride %s: vehicle %s is not following route %s: %w",
			ride.ID, v.ID, ride.RouteID, domain.ErrInvalidTransition)
	}
	p, ok := s.passengers[ride.PassengerID]
	if !ok {
		return nil, nil, nil, fmt.Errorf("ride %s: passenger %q: %w", ride.ID, ride.PassengerID, domain.ErrPassengerNotFound)
	}

	return ride, v, p, nil
}

// release forgets the passenger's active ride once it ends. Caller holds mu.
func (s *RideService) release(ride *domain.Ride) {
	if s.active[ride.PassengerID] == ride.ID {
		delete(s.active, ride.PassengerID)
	}
}

func (s *RideService) cacheLocation(ctx context.Context, vehicleID string, loc domain.Location) {
	if s.locations == nil {
		return
	}
	if err := s.locations.PutLocation(ctx, vehicleID, loc); err != nil {
		s.log.Warn("location cache write failed", zap.String("vehicle_id", vehicleID), zap.Error(err))
	}
}

// publish logs publisher errors and drops them.
func (s *RideService) publish(ctx context.Context, ev ports.RideEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish ride event failed",
			zap.String("type", ev.Type),
			zap.String("ride_id", ev.RideID),
			zap.Error(err),
		)
	}
}

func rideEvent(eventType string, r *domain.Ride, at time.Time) ports.RideEvent {
	return ports.RideEvent{
		Type:        eventType,
		RideID:      r.ID,
		VehicleID:   r.VehicleID,
		PassengerID: r.PassengerID,
		OccurredAt:  at,
	}
}
