package main

import (
	"fmt"
	"ride-dispatch-service/internal/adapters/events"
	"ride-dispatch-service/internal/adapters/repositories"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"
	"time"
)

// demoFleet builds the two-vehicle Gemini Transit fleet.
func demoFleet() (*domain.Fleet, []*domain.Passenger, error) {
	fleet := domain.NewFleet("fleet_01", "Gemini Transit")

	robo := domain.NewRoboTaxi("rt_101", domain.NewLocation(40.7128, -74.0060), 4)
	sensors := []*domain.Sensor{
		domain.NewSensor("lidar_01", domain.SensorLidar, domain.Position{X: 0, Y: 0, Z: 1.5}),
		domain.NewSensor("cam_front", domain.SensorCamera, domain.Position{X: 0.5, Y: 0, Z: 1.0}),
	}
	for _, s := range sensors {
		if err := robo.AddSensor(s); err != nil {
			return nil, nil, err
		}
	}

	taxi := domain.NewTaxi("taxi_202", domain.NewLocation(40.7580, -73.9855), 4)
	if err := taxi.AssignDriver(domain.NewDriver("d_jane", "Jane Doe", "D12345")); err != nil {
		return nil, nil, err
	}

	fleet.AddVehicle(robo)
	fleet.AddVehicle(taxi)

	alex := domain.NewPassenger("p_alex", "Alex", "555-0101", fleet)
	return fleet, []*domain.Passenger{alex}, nil
}

func loadFleet(opts *options) (*domain.Fleet, []*domain.Passenger, error) {
	if opts.seedPath == "" {
		return demoFleet()
	}
	return repositories.LoadFleetSeed(opts.seedPath)
}

// newService wires a RideService backed by memory and a fixed clock so runs
// are reproducible.
func newService(opts *options, start time.Time) (*services.RideService, *clock, error) {
	fleet, passengers, err := loadFleet(opts)
	if err != nil {
		return nil, nil, err
	}

	clk := &clock{now: start}
	svc, err := services.NewRideService(fleet, repositories.NewMemoryRideRepository(),
		services.WithLogger(opts.log),
		services.WithEventPublisher(events.NewLogPublisher(opts.log.Named("events"))),
		services.WithClock(clk.Now),
	)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range passengers {
		if err := svc.RegisterPassenger(p); err != nil {
			return nil, nil, fmt.Errorf("register passenger: %w", err)
		}
	}
	return svc, clk, nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }
