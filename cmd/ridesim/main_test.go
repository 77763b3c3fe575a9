package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestSimulateDemo(t *testing.T) {
	out := execute(t, "simulate")

	assert.Contains(t, out, "dispatched rt_101 on route_for_rt_101 (5.31 km)")
	assert.Contains(t, out, "lidar_01 (LIDAR): 42.0")
	assert.Contains(t, out, "picked up p_alex")
	assert.Contains(t, out, "--- 2 requested, 2 completed, 0 failed")
}

func TestVehiclesDemo(t *testing.T) {
	out := execute(t, "vehicles")

	assert.Contains(t, out, "Fleet fleet_01 (Gemini Transit)")
	assert.Contains(t, out, "taxi_202")
	assert.Contains(t, out, "driver Jane Doe")
	assert.Contains(t, out, "2 sensors")
}

func TestSimulateFromSeed(t *testing.T) {
	seed := `
fleet: {id: tiny, operator: Tiny Cabs}
vehicles:
  - id: cab_1
    kind: taxi
    max_passengers: 1
    location: {lat: 40.7128, lon: -74.0060}
passengers:
  - {id: p_alex, name: Alex}
`
	path := filepath.Join(t.TempDir(), "fleet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	out := execute(t, "simulate", "--seed", path)

	// cab_1 has no driver, so the drive step fails but the ride still completes.
	assert.Contains(t, out, "drive failed")
	assert.Contains(t, out, "--- 2 requested, 2 completed, 0 failed")
}

func TestSimulateMissingSeed(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"simulate", "--seed", filepath.Join(t.TempDir(), "nope.yaml")})

	require.Error(t, cmd.Execute())
}
