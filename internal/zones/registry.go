// Package zones holds the static set of no-fly zones.
package zones

import (
	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// defaultZones is the compiled-in zone set. Iteration order is significant:
// violation reporting returns the first matching zone in this order.
var defaultZones = []domain.NoFlyZone{
	{
		ID:           1,
		Name:         "Ak Orda Area",
		Center:       domain.Coordinate{Latitude: 51.1258334, Longitude: 71.4466667},
		RadiusMeters: 5000,
	},
	{
		ID:           2,
		Name:         "Astana Airport Area",
		Center:       domain.Coordinate{Latitude: 51.0313889, Longitude: 71.4633333},
		RadiusMeters: 5000,
	},
}

// Registry is a read-only, ordered collection of no-fly zones. It is safe to
// share across goroutines without synchronization.
type Registry struct {
	zones []domain.NoFlyZone
}

// NewRegistry creates a registry over the given zones, preserving order.
func NewRegistry(zones []domain.NoFlyZone) *Registry {
	owned := make([]domain.NoFlyZone, len(zones))
	copy(owned, zones)

	return &Registry{zones: owned}
}

// DefaultRegistry returns a registry with the compiled-in zone set.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultZones)
}

// Zones returns the zones in stable registry order. The returned slice must
// not be modified.
func (r *Registry) Zones() []domain.NoFlyZone {
	return r.zones
}
