package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

// ZoneHandler serves the static no-fly zone set so the console can draw it.
type ZoneHandler struct {
	registry *zones.Registry
}

// NewZoneHandler creates a new ZoneHandler.
func NewZoneHandler(registry *zones.Registry) *ZoneHandler {
	return &ZoneHandler{registry: registry}
}

// RegisterRoutes mounts the zone routes.
func (h *ZoneHandler) RegisterRoutes(r chi.Router) {
	r.Get("/zones", h.List)
}

// List handles GET /zones.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.Zones())
}
