package domain

import (
	"math"
)

// Route is an ordered sequence of waypoints; insertion order is travel order.
// A Route is shared by reference between the Fleet that builds it and the
// Vehicle that follows it.
type Route struct {
	id        string
	waypoints []Location
}

func NewRoute(id string) *Route {
	return &Route{id: id}
}

func (r *Route) ID() string { return r.id }

// Append a waypoint to the end of the route.
func (r *Route) AddWaypoint(loc Location) {
	r.waypoints = append(r.waypoints, loc)
}

// Distance sums DistanceTo over consecutive waypoints. Routes with fewer
// than two waypoints have zero length.
func (r *Route) Distance() float64 {
	total := 0.0
	for i := 1; i < len(r.waypoints); i++ {
		total += r.waypoints[i-1].DistanceTo(r.waypoints[i])
	}
	return total
}

func (r *Route) WaypointCount() int { return len(r.waypoints) }

// Waypoints returns a copy of the ordered waypoints.
func (r *Route) Waypoints() []Location {
	out := make([]Location, len(r.waypoints))
	copy(out, r.waypoints)
	return out
}

// Optimize reorders the intermediate waypoints with a greedy nearest-neighbor
// pass starting from the first waypoint. The first and last waypoints are
// fixed, so routes with three or fewer waypoints are returned unchanged.
//
// This is not a global optimization; ties keep the earlier waypoint.
func (r *Route) Optimize() {
	if len(r.waypoints) <= 3 {
		return
	}

	last := len(r.waypoints) - 1
	remaining := make([]Location, 0, last-1)
	remaining = append(remaining, r.waypoints[1:last]...)

	ordered := make([]Location, 0, len(r.waypoints))
	ordered = append(ordered, r.waypoints[0])
	current := r.waypoints[0]

	for len(remaining) > 0 {
		bestIdx := -1
		bestDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, candidate := range remaining {
			d := current.DistanceTo(candidate)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		current = remaining[bestIdx]
		ordered = append(ordered, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	ordered = append(ordered, r.waypoints[last])
	r.waypoints = ordered
}
