package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Distance returns the great-circle distance between two points in meters
func Distance(a, b Point) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	lonDiff := p2.Lng.Radians() - p1.Lng.Radians()
	y := math.Sin(lonDiff) * math.Cos(p2.Lat.Radians())
	x := math.Cos(p1.Lat.Radians())*math.Sin(p2.Lat.Radians()) -
		math.Sin(p1.Lat.Radians())*math.Cos(p2.Lat.Radians())*math.Cos(lonDiff)

	bearingDeg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	MetersPerKm       = 1000.0
)
