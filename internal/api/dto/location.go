package dto

import "ride-dispatch-service/internal/domain"

type Location struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// ToDomain reports false when either coordinate is missing.
func (l Location) ToDomain() (domain.Location, bool) {
	if l.Lat == nil || l.Lon == nil {
		return domain.Location{}, false
	}
	return domain.NewLocation(*l.Lat, *l.Lon), true
}

func FromLocation(loc domain.Location) Location {
	lat, lon := loc.Lat, loc.Lon
	return Location{Lat: &lat, Lon: &lon}
}

func FromLocations(locs []domain.Location) []Location {
	out := make([]Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, FromLocation(l))
	}
	return out
}
