package repositories

import (
	"context"
	"database/sql"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// PostgresTelemetryRepository implements TelemetryRepository for PostgreSQL.
type PostgresTelemetryRepository struct {
	db *sql.DB
}

// NewPostgresTelemetryRepository creates a new PostgresTelemetryRepository.
func NewPostgresTelemetryRepository(db *sql.DB) *PostgresTelemetryRepository {
	return &PostgresTelemetryRepository{db: db}
}

func (r *PostgresTelemetryRepository) Save(ctx context.Context, t *domain.Telemetry) error {
	query := `
        INSERT INTO telemetry (flight_id, drone_id, latitude, longitude, altitude, speed, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `

	return r.db.QueryRowContext(
		ctx,
		query,
		t.FlightID,
		t.DroneID,
		t.Latitude,
		t.Longitude,
		t.Altitude,
		t.Speed,
		t.CreatedAt,
	).Scan(&t.ID)
}

func (r *PostgresTelemetryRepository) FindByFlightID(ctx context.Context, flightID, limit int) ([]*domain.Telemetry, error) {
	query := `
        SELECT id, flight_id, drone_id, latitude, longitude, altitude, speed, created_at
        FROM telemetry
        WHERE flight_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	rows, err := r.db.QueryContext(ctx, query, flightID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.Telemetry
	for rows.Next() {
		var t domain.Telemetry
		if err := rows.Scan(
			&t.ID,
			&t.FlightID,
			&t.DroneID,
			&t.Latitude,
			&t.Longitude,
			&t.Altitude,
			&t.Speed,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &t)
	}

	return records, rows.Err()
}
