package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// LocationRepository persists building/floor/room records.
type LocationRepository interface {
	CRUD[domain.Location]
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository returns a Postgres-backed implementation.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

const locationColumns = `id, building, floor, room, created_at, updated_at`

func (r *locationRepository) Create(ctx context.Context, location *domain.Location) error {
	const query = `
        INSERT INTO locations (building, floor, room)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, location.Building, location.Floor, location.Room).
		Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY building, floor, room`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanLocation)
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id=$1`, id))
}

func (r *locationRepository) Update(ctx context.Context, location *domain.Location) error {
	const query = `
        UPDATE locations SET building=$1, floor=$2, room=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, location.Building, location.Floor, location.Room, location.ID).
		Scan(&location.UpdatedAt)
}

func (r *locationRepository) Delete(ctx context.Context, id string) (*domain.Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `DELETE FROM locations WHERE id=$1 RETURNING `+locationColumns, id))
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var location domain.Location
	if err := row.Scan(
		&location.ID,
		&location.Building,
		&location.Floor,
		&location.Room,
		&location.CreatedAt,
		&location.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &location, nil
}
