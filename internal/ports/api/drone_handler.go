package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/application"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// DroneHandler serves the drone fleet endpoints.
type DroneHandler struct {
	droneService *application.DroneService
}

// NewDroneHandler creates a new DroneHandler.
func NewDroneHandler(droneService *application.DroneService) *DroneHandler {
	return &DroneHandler{droneService: droneService}
}

// RegisterRoutes mounts the drone routes.
func (h *DroneHandler) RegisterRoutes(r chi.Router) {
	r.Route("/drones", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Post("/block/{id}", h.Block)
		r.Post("/unblock/{id}", h.Unblock)
	})
}

type droneInfo struct {
	ID          int    `json:"id"`
	Model       string `json:"model"`
	WeightLimit int    `json:"weight_limit"`
	Battery     int    `json:"battery"`
	Status      string `json:"status"`
}

func infoFromDrone(d *domain.Drone) droneInfo {
	return droneInfo{
		ID:          d.ID,
		Model:       d.Model,
		WeightLimit: d.WeightLimit,
		Battery:     d.Battery,
		Status:      string(d.Status()),
	}
}

// List handles GET /drones.
func (h *DroneHandler) List(w http.ResponseWriter, r *http.Request) {
	drones, err := h.droneService.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]droneInfo, len(drones))
	for i, d := range drones {
		out[i] = infoFromDrone(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetByID handles GET /drones/{id}.
func (h *DroneHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, application.ErrInvalidRequestData.Error(), http.StatusBadRequest)
		return
	}

	drone, err := h.droneService.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, infoFromDrone(drone))
}

// Block handles POST /drones/block/{id}.
func (h *DroneHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.droneService.Block)
}

// Unblock handles POST /drones/unblock/{id}.
func (h *DroneHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.droneService.Unblock)
}

func (h *DroneHandler) setActive(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, droneID int) error,
) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, application.ErrInvalidRequestData.Error(), http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), id); err != nil {
		if errors.Is(err, application.ErrDroneNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
