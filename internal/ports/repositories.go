package ports

import (
	"context"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// FlightRepository defines persistence for flight plans.
type FlightRepository interface {
	Save(ctx context.Context, flight *domain.Flight) error
	FindByID(ctx context.Context, id int) (*domain.Flight, error)
	List(ctx context.Context, page, take int) ([]*domain.Flight, int, error)
	Update(ctx context.Context, flight *domain.Flight) error
}

// DroneRepository defines persistence for registered drones.
type DroneRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Drone, error)
	FindFirstAvailable(ctx context.Context) (*domain.Drone, error)
	FindAll(ctx context.Context) ([]*domain.Drone, error)
	Update(ctx context.Context, drone *domain.Drone) error
}

// TelemetryRepository defines persistence for position reports.
type TelemetryRepository interface {
	Save(ctx context.Context, t *domain.Telemetry) error
	FindByFlightID(ctx context.Context, flightID, limit int) ([]*domain.Telemetry, error)
}
