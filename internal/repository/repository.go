package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CRUD is the persistence contract shared by every resource. Update, GetByID and
// Delete return pgx.ErrNoRows when the id does not exist.
type CRUD[T any] interface {
	Create(ctx context.Context, entity *T) error
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) (*T, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()
	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}
