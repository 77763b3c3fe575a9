package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengerRequestRideWithoutFleet(t *testing.T) {
	p := NewPassenger("p_alex", "Alex", "555-0101", nil)

	v, err := p.RequestRide(lowerManhattan, timesSquare)
	require.ErrorIs(t, err, ErrNoFleet)
	assert.Nil(t, v)
}

func TestPassengerRequestRideDoesNotBoard(t *testing.T) {
	f := NewFleet("fleet_01", "Gemini Transit")
	rt := NewRoboTaxi("rt_101", lowerManhattan, 4)
	f.AddVehicle(rt)
	p := NewPassenger("p_alex", "Alex", "555-0101", f)

	v, err := p.RequestRide(lowerManhattan, timesSquare)
	require.NoError(t, err)
	assert.Same(t, rt, v)
	assert.Zero(t, v.PassengerCount())

	_, ok := p.CurrentVehicle()
	assert.False(t, ok)

	require.NoError(t, v.PickupPassenger(p))
	got, ok := p.CurrentVehicle()
	require.True(t, ok)
	assert.Same(t, rt, got)
}

func TestPassengerCurrentVehicleAfterRemoval(t *testing.T) {
	f := NewFleet("fleet_01", "Gemini Transit")
	v := NewVehicle("v1", lowerManhattan, 4)
	f.AddVehicle(v)
	p := NewPassenger("p1", "Alex", "555-0101", f)
	require.NoError(t, v.PickupPassenger(p))

	f.RemoveVehicle(v)

	_, ok := p.CurrentVehicle()
	assert.False(t, ok, "handle must not resolve once the vehicle leaves the fleet")
}
