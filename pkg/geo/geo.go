// Package geo provides great-circle math over WGS84 coordinates.
package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for all distance math.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between two points given
// in degrees. It is symmetric and zero for identical points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(p1, p2).Angle())

	return angle.Radians() * EarthRadiusMeters
}

// Lerp linearly interpolates between a and b at fraction t. Route segment
// sampling interpolates latitude and longitude independently, matching how
// routes are drawn on the flat map rather than along the geodesic.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
