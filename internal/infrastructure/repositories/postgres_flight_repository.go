package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// PostgresFlightRepository implements FlightRepository for PostgreSQL.
type PostgresFlightRepository struct {
	db *sql.DB
}

// NewPostgresFlightRepository creates a new PostgresFlightRepository.
func NewPostgresFlightRepository(db *sql.DB) *PostgresFlightRepository {
	return &PostgresFlightRepository{db: db}
}

func (r *PostgresFlightRepository) Save(ctx context.Context, flight *domain.Flight) error {
	query := `
        INSERT INTO flights (status, points, drone_id, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `

	return r.db.QueryRowContext(
		ctx,
		query,
		flight.Status,
		flight.Points,
		flight.DroneID,
		flight.UserID,
		flight.CreatedAt,
		flight.UpdatedAt,
	).Scan(&flight.ID)
}

func (r *PostgresFlightRepository) FindByID(ctx context.Context, id int) (*domain.Flight, error) {
	query := `
        SELECT f.id, f.status, f.points, f.drone_id, f.user_id, f.created_at, f.updated_at,
               d.id, d.model, d.weight_limit, d.battery, d.is_active, d.is_flying
        FROM flights f
        JOIN drones d ON d.id = f.drone_id
        WHERE f.id = $1
    `

	var flight domain.Flight
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&flight.ID,
		&flight.Status,
		&flight.Points,
		&flight.DroneID,
		&flight.UserID,
		&flight.CreatedAt,
		&flight.UpdatedAt,
		&flight.Drone.ID,
		&flight.Drone.Model,
		&flight.Drone.WeightLimit,
		&flight.Drone.Battery,
		&flight.Drone.IsActive,
		&flight.Drone.IsFlying,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("flight not found")
	}
	if err != nil {
		return nil, err
	}

	return &flight, nil
}

func (r *PostgresFlightRepository) List(ctx context.Context, page, take int) ([]*domain.Flight, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flights").Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * take

	query := `
        SELECT f.id, f.status, f.points, f.drone_id, f.user_id, f.created_at, f.updated_at,
               d.id, d.model, d.weight_limit, d.battery, d.is_active, d.is_flying
        FROM flights f
        JOIN drones d ON d.id = f.drone_id
        ORDER BY f.id
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.QueryContext(ctx, query, take, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var flights []*domain.Flight
	for rows.Next() {
		var flight domain.Flight
		if err := rows.Scan(
			&flight.ID,
			&flight.Status,
			&flight.Points,
			&flight.DroneID,
			&flight.UserID,
			&flight.CreatedAt,
			&flight.UpdatedAt,
			&flight.Drone.ID,
			&flight.Drone.Model,
			&flight.Drone.WeightLimit,
			&flight.Drone.Battery,
			&flight.Drone.IsActive,
			&flight.Drone.IsFlying,
		); err != nil {
			return nil, 0, err
		}
		flights = append(flights, &flight)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return flights, total, nil
}

func (r *PostgresFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	query := `
        UPDATE flights
        SET status = $1, points = $2, updated_at = $3
        WHERE id = $4
    `

	_, err := r.db.ExecContext(ctx, query, flight.Status, flight.Points, flight.UpdatedAt, flight.ID)
	return err
}
