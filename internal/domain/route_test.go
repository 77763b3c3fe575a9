package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRouteDistance(t *testing.T) {
	r := NewRoute("r1")
	assert.Zero(t, r.Distance())
	assert.Zero(t, r.WaypointCount())

	r.AddWaypoint(lowerManhattan)
	assert.Zero(t, r.Distance(), "single waypoint has no length")

	r.AddWaypoint(timesSquare)
	r.AddWaypoint(libertyIsland)

	want := lowerManhattan.DistanceTo(timesSquare) + timesSquare.DistanceTo(libertyIsland)
	assert.Equal(t, want, r.Distance())
	assert.Equal(t, 3, r.WaypointCount())
	assert.Equal(t, "r1", r.ID())
}

func TestRouteWaypointsReturnsCopy(t *testing.T) {
	r := NewRoute("r1")
	r.AddWaypoint(lowerManhattan)

	wps := r.Waypoints()
	wps[0] = timesSquare

	assert.Equal(t, lowerManhattan, r.Waypoints()[0])
}

func TestRouteOptimizeKeepsShortRoutes(t *testing.T) {
	r := NewRoute("r1")
	r.AddWaypoint(libertyIsland)
	r.AddWaypoint(lowerManhattan)
	r.AddWaypoint(timesSquare)

	before := r.Waypoints()
	r.Optimize()

	if diff := cmp.Diff(before, r.Waypoints()); diff != "" {
		t.Errorf("Optimize() changed a three-waypoint route (-want +got):\n%s", diff)
	}
}

func TestRouteOptimizeReordersIntermediateWaypoints(t *testing.T) {
	r := NewRoute("r1")
	for _, lon := range []float64{0, 3, 1, 2, 4} {
		r.AddWaypoint(NewLocation(0, lon))
	}
	before := r.Distance()

	r.Optimize()

	want := []Location{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}
	if diff := cmp.Diff(want, r.Waypoints()); diff != "" {
		t.Errorf("Optimize() mismatch (-want +got):\n%s", diff)
	}
	assert.Less(t, r.Distance(), before)
}
