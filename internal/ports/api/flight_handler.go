package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/application"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/route"
)

// FlightHandler serves the flight plan endpoints.
type FlightHandler struct {
	flightService *application.FlightService
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(flightService *application.FlightService) *FlightHandler {
	return &FlightHandler{flightService: flightService}
}

// RegisterRoutes mounts the flight routes.
func (h *FlightHandler) RegisterRoutes(r chi.Router) {
	r.Route("/flights", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Post("/accept/{id}", h.Accept)
		r.Post("/reject/{id}", h.Reject)
		r.Post("/start/{id}", h.Start)
		r.Post("/finish/{id}", h.Finish)
	})
}

type flightInfo struct {
	ID          int    `json:"id"`
	Status      string `json:"status"`
	Points      string `json:"points"`
	DroneID     int    `json:"drone_id"`
	DroneModel  string `json:"droneModel"`
	DroneStatus string `json:"droneStatus"`
	UserID      int    `json:"user_id"`
}

type flightListResponse struct {
	Flights []flightInfo `json:"flights"`
	Total   int          `json:"total"`
}

func infoFromFlight(f *domain.Flight) flightInfo {
	return flightInfo{
		ID:          f.ID,
		Status:      string(f.Status),
		Points:      f.Points,
		DroneID:     f.DroneID,
		DroneModel:  f.Drone.Model,
		DroneStatus: string(f.Drone.Status()),
		UserID:      f.UserID,
	}
}

// List handles GET /flights?page=&take=.
func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	take, err := strconv.Atoi(r.URL.Query().Get("take"))
	if err != nil {
		take = 10
	}

	flights, total, err := h.flightService.List(r.Context(), page, take)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := flightListResponse{Flights: make([]flightInfo, len(flights)), Total: total}
	for i, f := range flights {
		resp.Flights[i] = infoFromFlight(f)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /flights. Rejection codes from the service go back
// verbatim; the console owns the mapping to user-facing messages.
func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Points string `json:"points"`
		UserID int    `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, application.ErrInvalidRequestData.Error(), http.StatusBadRequest)
		return
	}

	flight, err := h.flightService.Create(r.Context(), request.UserID, request.Points)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, infoFromFlight(flight))
}

// GetByID handles GET /flights/{id}.
func (h *FlightHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, application.ErrInvalidRequestData.Error(), http.StatusBadRequest)
		return
	}

	flight, err := h.flightService.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, infoFromFlight(flight))
}

// Accept handles POST /flights/accept/{id}.
func (h *FlightHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.flightService.Accept)
}

// Reject handles POST /flights/reject/{id}.
func (h *FlightHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.flightService.Reject)
}

// Start handles POST /flights/start/{id}.
func (h *FlightHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.flightService.Start)
}

// Finish handles POST /flights/finish/{id}.
func (h *FlightHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.flightService.Finish)
}

func (h *FlightHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, flightID int) error,
) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, application.ErrInvalidRequestData.Error(), http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// writeServiceError maps service failures to HTTP. Every known rejection is
// a 400 carrying the code text unmodified.
func writeServiceError(w http.ResponseWriter, err error) {
	var zv *route.ZoneViolationError
	if errors.As(err, &zv) {
		http.Error(w, zv.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, application.ErrInvalidRequestData),
		errors.Is(err, application.ErrFlightNotPending),
		errors.Is(err, application.ErrFlightNotAccepted),
		errors.Is(err, application.ErrFlightNotStarted),
		errors.Is(err, application.ErrDroneFlying),
		errors.Is(err, application.ErrDroneBlocked),
		errors.Is(err, application.ErrNoAvailableDrone):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
