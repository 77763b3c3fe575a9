package repositories

import (
	"os"
	"path/filepath"
	"ride-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
fleet:
  id: fleet_01
  operator: Gemini Transit
  service_area:
    - { lat: 40.70, lon: -74.02 }
vehicles:
  - id: rt_101
    kind: robotaxi
    max_passengers: 4
    location: { lat: 40.7128, lon: -74.0060 }
    sensors:
      - { id: lidar_01, type: LIDAR, position: [0, 0, 1.5] }
      - { id: cam_front, type: CAMERA, position: [0.5, 0, 1.0] }
  - id: taxi_202
    kind: taxi
    max_passengers: 4
    location: { lat: 40.7580, lon: -73.9855 }
    driver: { id: d_jane, name: Jane Doe, license: D12345 }
  - id: van_303
    max_passengers: 8
    location: { lat: 40.7000, lon: -74.0000 }
    status: MAINTENANCE
passengers:
  - { id: p_alex, name: Alex, phone: 555-0101 }
`

func TestParseFleetSeed(t *testing.T) {
	fleet, passengers, err := ParseFleetSeed([]byte(seedYAML))
	require.NoError(t, err)

	assert.Equal(t, "fleet_01", fleet.ID)
	assert.Equal(t, "Gemini Transit", fleet.OperatorName)
	assert.Len(t, fleet.ServiceArea, 1)

	vehicles := fleet.Vehicles()
	require.Len(t, vehicles, 3)

	rt := vehicles[0]
	assert.Equal(t, domain.KindRoboTaxi, rt.Kind)
	require.Len(t, rt.Sensors(), 2)
	assert.Equal(t, domain.SensorLidar, rt.Sensors()[0].Type)
	assert.Equal(t, domain.Position{X: 0, Y: 0, Z: 1.5}, rt.Sensors()[0].Position)

	taxi := vehicles[1]
	assert.Equal(t, domain.KindTaxi, taxi.Kind)
	require.NotNil(t, taxi.Driver())
	assert.Equal(t, "Jane Doe", taxi.Driver().Name)
	assert.InDelta(t, 5.0, taxi.Driver().Rating, 1e-6)

	van := vehicles[2]
	assert.Equal(t, domain.KindStandard, van.Kind)
	assert.Equal(t, domain.StatusMaintenance, van.Status())

	require.Len(t, passengers, 1)
	assert.Equal(t, "p_alex", passengers[0].ID)
	assert.Same(t, fleet, passengers[0].Fleet())
}

func TestParseFleetSeedErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing fleet id", "fleet: {operator: x}"},
		{"bad kind", "fleet: {id: f}\nvehicles:\n  - {id: v, kind: bus, max_passengers: 2}"},
		{"zero capacity", "fleet: {id: f}\nvehicles:\n  - {id: v, max_passengers: 0}"},
		{"duplicate vehicle", "fleet: {id: f}\nvehicles:\n  - {id: v, max_passengers: 1}\n  - {id: v, max_passengers: 1}"},
		{"driver on robotaxi", "fleet: {id: f}\nvehicles:\n  - {id: v, kind: robotaxi, max_passengers: 1, driver: {id: d}}"},
		{"sensor on taxi", "fleet: {id: f}\nvehicles:\n  - {id: v, kind: taxi, max_passengers: 1, sensors: [{id: s, type: GPS}]}"},
		{"bad sensor type", "fleet: {id: f}\nvehicles:\n  - {id: v, kind: robotaxi, max_passengers: 1, sensors: [{id: s, type: SONAR}]}"},
		{"bad location", "fleet: {id: f}\nvehicles:\n  - {id: v, max_passengers: 1, location: {lat: 91, lon: 0}}"},
		{"bad status", "fleet: {id: f}\nvehicles:\n  - {id: v, max_passengers: 1, status: FLYING}"},
		{"duplicate passenger", "fleet: {id: f}\npassengers:\n  - {id: p}\n  - {id: p}"},
		{"malformed", "fleet: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseFleetSeed([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadFleetSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	fleet, passengers, err := LoadFleetSeed(path)
	require.NoError(t, err)
	assert.Len(t, fleet.Vehicles(), 3)
	assert.Len(t, passengers, 1)

	_, _, err = LoadFleetSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
