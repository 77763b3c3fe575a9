package domain

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Location struct {
	Lat float64
	Lon float64
}

func NewLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon}
}

// DistanceTo returns the great-circle (Haversine) distance in kilometres.
// The result is symmetric and zero for identical coordinates.
func (l Location) DistanceTo(other Location) float64 {
	if l == other {
		return 0
	}

	lat1 := toRadians(l.Lat)
	lat2 := toRadians(other.Lat)
	dLat := toRadians(other.Lat - l.Lat)
	dLon := toRadians(other.Lon - l.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Validate reports whether the coordinates are within WGS84 bounds.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidLocation, l.Lat)
	}
	if math.IsNaN(l.Lon) || l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidLocation, l.Lon)
	}
	return nil
}

// Return coordinates as [lon, lat] for external API compatibility.
func (l Location) CoordsToList() []float64 { return []float64{l.Lon, l.Lat} }

func (l Location) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", l.Lat, l.Lon)
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
