package repositories

import (
	"errors"
	"fmt"
	"os"
	"ride-dispatch-service/internal/domain"
	"strings"

	"gopkg.in/yaml.v3"
)

// FleetSeed is the YAML document describing a fleet, its vehicles and the
// passengers registered with it.
type FleetSeed struct {
	Fleet      FleetHeader     `yaml:"fleet"`
	Vehicles   []VehicleSeed   `yaml:"vehicles"`
	Passengers []PassengerSeed `yaml:"passengers"`
}

type FleetHeader struct {
	ID          string         `yaml:"id"`
	Operator    string         `yaml:"operator"`
	ServiceArea []LocationSeed `yaml:"service_area"`
}

type LocationSeed struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

type VehicleSeed struct {
	ID            string       `yaml:"id"`
	Kind          string       `yaml:"kind"`
	MaxPassengers int          `yaml:"max_passengers"`
	Location      LocationSeed `yaml:"location"`
	Status        string       `yaml:"status"`
	Driver        *DriverSeed  `yaml:"driver"`
	Sensors       []SensorSeed `yaml:"sensors"`
}

type DriverSeed struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	License string `yaml:"license"`
}

type SensorSeed struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Position []float64 `yaml:"position"`
}

type PassengerSeed struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

// LoadFleetSeed reads and builds a fleet from a YAML seed file.
func LoadFleetSeed(path string) (*domain.Fleet, []*domain.Passenger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load fleet seed %q: %w", path, err)
	}

	fleet, passengers, err := ParseFleetSeed(data)
	if err != nil {
		return nil, nil, fmt.Errorf("load fleet seed %q: %w", path, err)
	}
	return fleet, passengers, nil
}

// ParseFleetSeed builds the domain objects described by a YAML seed document.
// Passengers are attached to the seeded fleet.
func ParseFleetSeed(data []byte) (*domain.Fleet, []*domain.Passenger, error) {
	var seed FleetSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, nil, fmt.Errorf("parse fleet seed: %w", err)
	}

	if strings.TrimSpace(seed.Fleet.ID) == "" {
		return nil, nil, errors.New("parse fleet seed: fleet.id must not be empty")
	}

	fleet := domain.NewFleet(seed.Fleet.ID, seed.Fleet.Operator)
	for i, ls := range seed.Fleet.ServiceArea {
		loc := ls.toDomain()
		if err := loc.Validate(); err != nil {
			return nil, nil, fmt.Errorf("parse fleet seed: service_area[%d]: %w", i, err)
		}
		fleet.ServiceArea = append(fleet.ServiceArea, loc)
	}

	seenVehicles := map[string]struct{}{}
	for i, vs := range seed.Vehicles {
		if _, ok := seenVehicles[vs.ID]; ok {
			return nil, nil, fmt.Errorf("parse fleet seed: vehicles[%d]: duplicate id %q", i, vs.ID)
		}
		seenVehicles[vs.ID] = struct{}{}

		v, err := vs.build()
		if err != nil {
			return nil, nil, fmt.Errorf("parse fleet seed: vehicles[%d]: %w", i, err)
		}
		fleet.AddVehicle(v)
	}

	passengers := make([]*domain.Passenger, 0, len(seed.Passengers))
	seenPassengers := map[string]struct{}{}
	for i, ps := range seed.Passengers {
		if strings.TrimSpace(ps.ID) == "" {
			return nil, nil, fmt.Errorf("parse fleet seed: passengers[%d]: id must not be empty", i)
		}
		if _, ok := seenPassengers[ps.ID]; ok {
			return nil, nil, fmt.Errorf("parse fleet seed: passengers[%d]: duplicate id %q", i, ps.ID)
		}
		seenPassengers[ps.ID] = struct{}{}
		passengers = append(passengers, domain.NewPassenger(ps.ID, ps.Name, ps.Phone, fleet))
	}

	return fleet, passengers, nil
}

func (ls LocationSeed) toDomain() domain.Location {
	return domain.NewLocation(ls.Lat, ls.Lon)
}

func (vs VehicleSeed) build() (*domain.Vehicle, error) {
	if strings.TrimSpace(vs.ID) == "" {
		return nil, errors.New("id must not be empty")
	}
	if vs.MaxPassengers <= 0 {
		return nil, fmt.Errorf("vehicle %q: max_passengers must be positive", vs.ID)
	}

	kind, err := domain.ParseVehicleKind(vs.Kind)
	if err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", vs.ID, err)
	}

	loc := vs.Location.toDomain()
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", vs.ID, err)
	}

	var v *domain.Vehicle
	switch kind {
	case domain.KindTaxi:
		v = domain.NewTaxi(vs.ID, loc, vs.MaxPassengers)
	case domain.KindRoboTaxi:
		v = domain.NewRoboTaxi(vs.ID, loc, vs.MaxPassengers)
	default:
		v = domain.NewVehicle(vs.ID, loc, vs.MaxPassengers)
	}

	if vs.Status != "" {
		status, err := domain.ParseVehicleStatus(vs.Status)
		if err != nil {
			return nil, fmt.Errorf("vehicle %q: %w", vs.ID, err)
		}
		v.SetStatus(status)
	}

	if vs.Driver != nil {
		d := domain.NewDriver(vs.Driver.ID, vs.Driver.Name, vs.Driver.License)
		if err := v.AssignDriver(d); err != nil {
			return nil, err
		}
	}

	for _, ss := range vs.Sensors {
		sensorType, err := domain.ParseSensorType(ss.Type)
		if err != nil {
			return nil, fmt.Errorf("vehicle %q: sensor %q: %w", vs.ID, ss.ID, err)
		}
		pos, err := positionFromList(ss.Position)
		if err != nil {
			return nil, fmt.Errorf("vehicle %q: sensor %q: %w", vs.ID, ss.ID, err)
		}
		if err := v.AddSensor(domain.NewSensor(ss.ID, sensorType, pos)); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Positions are written as [x, y, z]; missing trailing axes default to 0.
func positionFromList(xyz []float64) (domain.Position, error) {
	if len(xyz) > 3 {
		return domain.Position{}, fmt.Errorf("position has %d components, want at most 3", len(xyz))
	}
	var p [3]float64
	copy(p[:], xyz)
	return domain.Position{X: p[0], Y: p[1], Z: p[2]}, nil
}
