package application

import (
	"context"
	"errors"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/ports"
)

// ErrDroneNotFound is returned for lookups of unknown drone ids.
var ErrDroneNotFound = errors.New("drone-not-found")

// DroneService manages the registered drone fleet.
type DroneService struct {
	droneRepo ports.DroneRepository
}

// NewDroneService creates a new DroneService.
func NewDroneService(droneRepo ports.DroneRepository) *DroneService {
	return &DroneService{droneRepo: droneRepo}
}

// GetByID returns one drone.
func (s *DroneService) GetByID(ctx context.Context, droneID int) (*domain.Drone, error) {
	drone, err := s.droneRepo.FindByID(ctx, droneID)
	if err != nil {
		return nil, ErrDroneNotFound
	}
	return drone, nil
}

// List returns the whole fleet in id order.
func (s *DroneService) List(ctx context.Context) ([]*domain.Drone, error) {
	return s.droneRepo.FindAll(ctx)
}

// Block takes a drone out of service. A blocked drone is never assigned to
// new flights and cannot start accepted ones.
func (s *DroneService) Block(ctx context.Context, droneID int) error {
	return s.setActive(ctx, droneID, false)
}

// Unblock returns a drone to service.
func (s *DroneService) Unblock(ctx context.Context, droneID int) error {
	return s.setActive(ctx, droneID, true)
}

func (s *DroneService) setActive(ctx context.Context, droneID int, active bool) error {
	drone, err := s.droneRepo.FindByID(ctx, droneID)
	if err != nil {
		return ErrDroneNotFound
	}

	drone.IsActive = active
	return s.droneRepo.Update(ctx, drone)
}
