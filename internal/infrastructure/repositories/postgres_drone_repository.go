package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
)

// PostgresDroneRepository implements DroneRepository for PostgreSQL.
type PostgresDroneRepository struct {
	db *sql.DB
}

// NewPostgresDroneRepository creates a new PostgresDroneRepository.
func NewPostgresDroneRepository(db *sql.DB) *PostgresDroneRepository {
	return &PostgresDroneRepository{db: db}
}

func (r *PostgresDroneRepository) FindByID(ctx context.Context, id int) (*domain.Drone, error) {
	query := `
        SELECT id, model, weight_limit, battery, is_active, is_flying
        FROM drones
        WHERE id = $1
    `

	var drone domain.Drone
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&drone.ID,
		&drone.Model,
		&drone.WeightLimit,
		&drone.Battery,
		&drone.IsActive,
		&drone.IsFlying,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("drone not found")
	}
	if err != nil {
		return nil, err
	}

	return &drone, nil
}

// FindFirstAvailable returns the lowest-id drone that is active and not
// currently flying. Flight creation assigns drones this way.
func (r *PostgresDroneRepository) FindFirstAvailable(ctx context.Context) (*domain.Drone, error) {
	query := `
        SELECT id, model, weight_limit, battery, is_active, is_flying
        FROM drones
        WHERE is_active = TRUE AND is_flying = FALSE
        ORDER BY id
        LIMIT 1
    `

	var drone domain.Drone
	err := r.db.QueryRowContext(ctx, query).Scan(
		&drone.ID,
		&drone.Model,
		&drone.WeightLimit,
		&drone.Battery,
		&drone.IsActive,
		&drone.IsFlying,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("no available drone")
	}
	if err != nil {
		return nil, err
	}

	return &drone, nil
}

func (r *PostgresDroneRepository) FindAll(ctx context.Context) ([]*domain.Drone, error) {
	query := `
        SELECT id, model, weight_limit, battery, is_active, is_flying
        FROM drones
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drones []*domain.Drone
	for rows.Next() {
		var drone domain.Drone
		if err := rows.Scan(
			&drone.ID,
			&drone.Model,
			&drone.WeightLimit,
			&drone.Battery,
			&drone.IsActive,
			&drone.IsFlying,
		); err != nil {
			return nil, err
		}
		drones = append(drones, &drone)
	}

	return drones, rows.Err()
}

func (r *PostgresDroneRepository) Update(ctx context.Context, drone *domain.Drone) error {
	query := `
        UPDATE drones
        SET model = $1, weight_limit = $2, battery = $3, is_active = $4, is_flying = $5
        WHERE id = $6
    `

	_, err := r.db.ExecContext(
		ctx,
		query,
		drone.Model,
		drone.WeightLimit,
		drone.Battery,
		drone.IsActive,
		drone.IsFlying,
		drone.ID,
	)
	return err
}
