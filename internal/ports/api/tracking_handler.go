package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/infrastructure/storage"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/ports"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/telemetry"
)

// historyLimit bounds one persisted-history page.
const historyLimit = 500

// TrackingHandler serves the live tracking view: per-flight trajectories,
// the status journal and the raw frame log, plus session archival.
type TrackingHandler struct {
	aggregator    *telemetry.TrackAggregator
	statusLog     *telemetry.StatusLog
	ingestor      *telemetry.Ingestor
	telemetryRepo ports.TelemetryRepository
	archive       *storage.TrackArchive
}

// NewTrackingHandler creates a new TrackingHandler. archive may be nil when
// no object storage is configured.
func NewTrackingHandler(
	aggregator *telemetry.TrackAggregator,
	statusLog *telemetry.StatusLog,
	ingestor *telemetry.Ingestor,
	telemetryRepo ports.TelemetryRepository,
	archive *storage.TrackArchive,
) *TrackingHandler {
	return &TrackingHandler{
		aggregator:    aggregator,
		statusLog:     statusLog,
		ingestor:      ingestor,
		telemetryRepo: telemetryRepo,
		archive:       archive,
	}
}

// RegisterRoutes mounts the tracking routes.
func (h *TrackingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tracking", func(r chi.Router) {
		r.Get("/flights", h.Flights)
		r.Get("/flights/{id}/trajectory", h.Trajectory)
		r.Get("/flights/{id}/history", h.History)
		r.Get("/status", h.Status)
		r.Get("/raw", h.RawFrames)
		r.Post("/archive", h.Archive)
	})
}

type trackedFlight struct {
	FlightID int              `json:"flight_id"`
	Color    string           `json:"color"`
	Latest   *telemetry.Entry `json:"latest,omitempty"`
}

// Flights handles GET /tracking/flights — every tracked flight with its
// render color and latest position.
func (h *TrackingHandler) Flights(w http.ResponseWriter, r *http.Request) {
	ids := h.aggregator.AllFlightIDs()
	out := make([]trackedFlight, len(ids))
	for i, id := range ids {
		tf := trackedFlight{FlightID: id, Color: h.aggregator.Color(id)}
		if latest, ok := h.aggregator.Latest(id); ok {
			tf.Latest = &latest
		}
		out[i] = tf
	}
	writeJSON(w, http.StatusOK, out)
}

// Trajectory handles GET /tracking/flights/{id}/trajectory.
func (h *TrackingHandler) Trajectory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid-request-data", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, h.aggregator.Trajectory(id))
}

// History handles GET /tracking/flights/{id}/history — persisted telemetry
// for the flight, newest first. Unlike Trajectory this survives restarts.
func (h *TrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid-request-data", http.StatusBadRequest)
		return
	}

	if h.telemetryRepo == nil {
		http.Error(w, "telemetry storage is not configured", http.StatusServiceUnavailable)
		return
	}

	records, err := h.telemetryRepo.FindByFlightID(r.Context(), id, historyLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Status handles GET /tracking/status — the status journal, oldest first.
func (h *TrackingHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.statusLog.Entries())
}

// RawFrames handles GET /tracking/raw — the last raw feed frames.
func (h *TrackingHandler) RawFrames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":  h.ingestor.State().String(),
		"frames": h.ingestor.RawFrames(),
	})
}

// Archive handles POST /tracking/archive — flushes the current raw frame
// log and status journal to object storage under a fresh session id.
func (h *TrackingHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		http.Error(w, "archive storage is not configured", http.StatusServiceUnavailable)
		return
	}

	sessionID := uuid.New()
	key, err := h.archive.ArchiveSession(r.Context(), sessionID, h.ingestor.RawFrames(), h.statusLog.Entries())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"session_id": sessionID.String(),
		"object_key": key,
	})
}
