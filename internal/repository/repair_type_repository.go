package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RepairTypeRepository persists the repair type catalog.
type RepairTypeRepository interface {
	CRUD[domain.RepairType]
}

type repairTypeRepository struct {
	pool *pgxpool.Pool
}

// NewRepairTypeRepository returns a Postgres-backed implementation.
func NewRepairTypeRepository(pool *pgxpool.Pool) RepairTypeRepository {
	return &repairTypeRepository{pool: pool}
}

const repairTypeColumns = `id, name, description, color, created_at, updated_at`

func (r *repairTypeRepository) Create(ctx context.Context, rt *domain.RepairType) error {
	const query = `
        INSERT INTO repair_types (name, description, color)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, rt.Name, rt.Description, rt.Color).
		Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *repairTypeRepository) List(ctx context.Context) ([]domain.RepairType, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+repairTypeColumns+` FROM repair_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRepairType)
}

func (r *repairTypeRepository) GetByID(ctx context.Context, id string) (*domain.RepairType, error) {
	return scanRepairType(r.pool.QueryRow(ctx, `SELECT `+repairTypeColumns+` FROM repair_types WHERE id=$1`, id))
}

func (r *repairTypeRepository) Update(ctx context.Context, rt *domain.RepairType) error {
	const query = `
        UPDATE repair_types SET name=$1, description=$2, color=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, rt.Name, rt.Description, rt.Color, rt.ID).Scan(&rt.UpdatedAt)
}

func (r *repairTypeRepository) Delete(ctx context.Context, id string) (*domain.RepairType, error) {
	return scanRepairType(r.pool.QueryRow(ctx, `DELETE FROM repair_types WHERE id=$1 RETURNING `+repairTypeColumns, id))
}

func scanRepairType(row rowScanner) (*domain.RepairType, error) {
	var rt domain.RepairType
	if err := row.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.Color, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, err
	}
	return &rt, nil
}
