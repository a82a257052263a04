package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RoleRepository persists roles.
type RoleRepository interface {
	CRUD[domain.Role]
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.pool.QueryRow(ctx, `INSERT INTO roles (name) VALUES ($1) RETURNING id, created_at`, role.Name).
		Scan(&role.ID, &role.CreatedAt)
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRole)
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, created_at FROM roles WHERE id=$1`, id))
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name, created_at FROM roles WHERE LOWER(name)=LOWER($1)`, name))
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE roles SET name=$1 WHERE id=$2`, role.Name, role.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `DELETE FROM roles WHERE id=$1 RETURNING id, name, created_at`, id))
}

func scanRole(row rowScanner) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		return nil, err
	}
	return &role, nil
}
