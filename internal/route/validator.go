// Package route implements flight-route authoring: zone containment checks
// for a clicked polyline and the editor session that gates submission.
package route

import (
	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
	"github.com/Tokshabayev/LetunTrafficManagement/pkg/geo"
)

// segmentSamples is the number of interior points tested per route segment.
// Vertex-only checking misses routes that pass through a zone between two
// widely spaced waypoints.
const segmentSamples = 9

// Validator checks an ordered waypoint sequence against the zone registry.
type Validator struct {
	registry *zones.Registry
}

// NewValidator creates a validator over the given registry.
func NewValidator(registry *zones.Registry) *Validator {
	return &Validator{registry: registry}
}

// FindViolatedZone returns the name of the first violated zone and true, or
// "" and false if the path stays clear. All vertices are tested before any
// segment interior, and zones are tested in registry order, so the result is
// deterministic for identical input.
func (v *Validator) FindViolatedZone(points []domain.Coordinate) (string, bool) {
	for _, p := range points {
		if name, ok := v.zoneContaining(p.Latitude, p.Longitude); ok {
			return name, true
		}
	}

	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		for s := 1; s <= segmentSamples; s++ {
			t := float64(s) / 10
			lat := geo.Lerp(a.Latitude, b.Latitude, t)
			lng := geo.Lerp(a.Longitude, b.Longitude, t)
			if name, ok := v.zoneContaining(lat, lng); ok {
				return name, true
			}
		}
	}

	return "", false
}

func (v *Validator) zoneContaining(lat, lng float64) (string, bool) {
	for _, z := range v.registry.Zones() {
		d := geo.DistanceMeters(lat, lng, z.Center.Latitude, z.Center.Longitude)
		if d < z.RadiusMeters {
			return z.Name, true
		}
	}
	return "", false
}
