// Package application holds the flight lifecycle rules sitting between the
// HTTP surface and the repositories.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/ports"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/route"
)

// Machine-readable rejection codes. Handlers pass these through to the
// console verbatim; the console owns the mapping to user-facing text.
var (
	ErrInvalidRequestData = errors.New("invalid-request-data")
	ErrFlightNotPending   = errors.New("flight-not-pending")
	ErrFlightNotAccepted  = errors.New("flight-not-accepted")
	ErrFlightNotStarted   = errors.New("flight-not-started")
	ErrDroneFlying        = errors.New("drone-already-flying")
	ErrDroneBlocked       = errors.New("drone-blocked")
	ErrNoAvailableDrone   = errors.New("no-available-drone")
)

// CommandBroadcaster pushes flight commands to the telemetry channel.
// Implemented by the websocket hub.
type CommandBroadcaster interface {
	BroadcastStart(flightID, droneID int, routePoints [][2]float64)
}

// FlightService implements the flight plan lifecycle:
// pending → accepted/rejected → started → finished.
type FlightService struct {
	flightRepo  ports.FlightRepository
	droneRepo   ports.DroneRepository
	validator   *route.Validator
	broadcaster CommandBroadcaster
}

// NewFlightService creates a flight service. broadcaster may be nil when no
// telemetry channel is attached.
func NewFlightService(
	flightRepo ports.FlightRepository,
	droneRepo ports.DroneRepository,
	validator *route.Validator,
	broadcaster CommandBroadcaster,
) *FlightService {
	return &FlightService{
		flightRepo:  flightRepo,
		droneRepo:   droneRepo,
		validator:   validator,
		broadcaster: broadcaster,
	}
}

// Create registers a new flight plan from the serialized waypoint payload.
// The route is re-validated server-side even though the console editor
// already checked it: a malformed or short payload fails with
// ErrInvalidRequestData, a route crossing a restricted area fails with
// *route.ZoneViolationError.
func (s *FlightService) Create(ctx context.Context, userID int, points string) (*domain.Flight, error) {
	waypoints, err := route.DecodePoints(points)
	if err != nil || len(waypoints) < 2 {
		return nil, ErrInvalidRequestData
	}

	if zone, ok := s.validator.FindViolatedZone(waypoints); ok {
		return nil, &route.ZoneViolationError{Zone: zone}
	}

	drone, err := s.droneRepo.FindFirstAvailable(ctx)
	if err != nil {
		return nil, ErrNoAvailableDrone
	}

	now := time.Now()
	flight := &domain.Flight{
		Status:    domain.FlightStatusPending,
		Points:    points,
		DroneID:   drone.ID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.flightRepo.Save(ctx, flight); err != nil {
		return nil, err
	}
	return flight, nil
}

// Accept approves a pending flight and broadcasts the start command with
// the decoded route.
func (s *FlightService) Accept(ctx context.Context, flightID int) error {
	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return ErrInvalidRequestData
	}

	if flight.Status != domain.FlightStatusPending {
		return ErrFlightNotPending
	}

	flight.Status = domain.FlightStatusAccepted
	flight.UpdatedAt = time.Now()
	if err := s.flightRepo.Update(ctx, flight); err != nil {
		return err
	}

	if s.broadcaster != nil {
		waypoints, err := route.DecodePoints(flight.Points)
		if err == nil {
			pairs := make([][2]float64, len(waypoints))
			for i, p := range waypoints {
				pairs[i] = [2]float64{p.Latitude, p.Longitude}
			}
			s.broadcaster.BroadcastStart(flight.ID, flight.DroneID, pairs)
		}
	}
	return nil
}

// Reject declines a pending flight.
func (s *FlightService) Reject(ctx context.Context, flightID int) error {
	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return ErrInvalidRequestData
	}

	if flight.Status != domain.FlightStatusPending {
		return ErrFlightNotPending
	}

	flight.Status = domain.FlightStatusRejected
	flight.UpdatedAt = time.Now()
	return s.flightRepo.Update(ctx, flight)
}

// Start moves an accepted flight to started and marks the drone as flying.
func (s *FlightService) Start(ctx context.Context, flightID int) error {
	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return ErrInvalidRequestData
	}

	if flight.Status != domain.FlightStatusAccepted {
		return ErrFlightNotAccepted
	}
	if flight.Drone.IsFlying {
		return ErrDroneFlying
	}
	if !flight.Drone.IsActive {
		return ErrDroneBlocked
	}

	flight.Status = domain.FlightStatusStarted
	flight.UpdatedAt = time.Now()
	flight.Drone.IsFlying = true

	if err := s.flightRepo.Update(ctx, flight); err != nil {
		return err
	}
	return s.droneRepo.Update(ctx, &flight.Drone)
}

// Finish completes a started flight and frees the drone.
func (s *FlightService) Finish(ctx context.Context, flightID int) error {
	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return ErrInvalidRequestData
	}

	if flight.Status != domain.FlightStatusStarted {
		return ErrFlightNotStarted
	}

	flight.Status = domain.FlightStatusFinished
	flight.UpdatedAt = time.Now()
	flight.Drone.IsFlying = false

	if err := s.flightRepo.Update(ctx, flight); err != nil {
		return err
	}
	return s.droneRepo.Update(ctx, &flight.Drone)
}

// GetByID returns one flight.
func (s *FlightService) GetByID(ctx context.Context, flightID int) (*domain.Flight, error) {
	return s.flightRepo.FindByID(ctx, flightID)
}

// List returns one page of flights plus the total count.
func (s *FlightService) List(ctx context.Context, page, take int) ([]*domain.Flight, int, error) {
	if page < 1 {
		page = 1
	}
	if take < 1 {
		take = 10
	}
	return s.flightRepo.List(ctx, page, take)
}
