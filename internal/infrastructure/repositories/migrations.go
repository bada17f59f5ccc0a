package repositories

import (
	"database/sql"
	"fmt"
)

// InitializeSchema creates the tables this service owns if they do not
// exist yet.
func InitializeSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS drones (
			id SERIAL PRIMARY KEY,
			model TEXT NOT NULL,
			weight_limit INTEGER NOT NULL DEFAULT 0,
			battery INTEGER NOT NULL DEFAULT 100,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_flying BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS flights (
			id SERIAL PRIMARY KEY,
			status TEXT NOT NULL,
			points TEXT NOT NULL,
			drone_id INTEGER NOT NULL REFERENCES drones(id),
			user_id INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS telemetry (
			id SERIAL PRIMARY KEY,
			flight_id INTEGER NOT NULL,
			drone_id INTEGER NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			altitude DOUBLE PRECISION NOT NULL,
			speed DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS telemetry_flight_time_idx
			ON telemetry (flight_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
