package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Patch is a partial update whose nil fields leave the entity unchanged.
type Patch[T any] interface {
	Apply(*T)
}

// Resource implements List/GetByID/Create/Update/Delete for one entity on top of a
// repository. Entity services embed it and override what they need.
type Resource[T any, P Patch[T]] struct {
	name     string
	store    repository.CRUD[T]
	validate func(*T) error
}

// NewResource builds the generic service. name is used in not-found messages.
func NewResource[T any, P Patch[T]](name string, store repository.CRUD[T], validate func(*T) error) *Resource[T, P] {
	return &Resource[T, P]{name: name, store: store, validate: validate}
}

// List returns the full collection.
func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := r.store.List(ctx)
	if err != nil {
		return nil, r.mapError("", err)
	}
	return items, nil
}

// GetByID returns the entity or a NOT_FOUND error.
func (r *Resource[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, r.notFound(id)
	}
	entity, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, r.mapError(id, err)
	}
	return entity, nil
}

// Create validates and persists the entity, filling server-assigned fields.
func (r *Resource[T, P]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := r.validate(entity); err != nil {
		return nil, err
	}
	if err := r.store.Create(ctx, entity); err != nil {
		return nil, r.mapError("", err)
	}
	return entity, nil
}

// Update merges patch into the stored entity, re-validates and persists the result.
func (r *Resource[T, P]) Update(ctx context.Context, id string, patch P) (*T, error) {
	entity, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(entity)
	return r.save(ctx, id, entity)
}

func (r *Resource[T, P]) save(ctx context.Context, id string, entity *T) (*T, error) {
	if err := r.validate(entity); err != nil {
		return nil, err
	}
	if err := r.store.Update(ctx, entity); err != nil {
		return nil, r.mapError(id, err)
	}
	return entity, nil
}

// Delete removes the entity and returns its last stored value.
func (r *Resource[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, r.notFound(id)
	}
	entity, err := r.store.Delete(ctx, id)
	if err != nil {
		return nil, r.mapError(id, err)
	}
	return entity, nil
}

func (r *Resource[T, P]) notFound(id string) error {
	return apperrors.NewNotFound(r.name, map[string]any{"id": id})
}

func (r *Resource[T, P]) mapError(id string, err error) error {
	return storeError(r.name, id, err)
}

// storeError turns storage failures into domain errors: missing rows become NOT_FOUND,
// unique violations CONFLICT and foreign key or check violations VALIDATION_FAILED.
func storeError(name, id string, err error) error {
	if apperrors.IsNotFound(err) {
		return apperrors.NewNotFound(name, map[string]any{"id": id})
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperrors.NewConflict(fmt.Sprintf("%s already exists", name), map[string]any{"constraint": pgErr.ConstraintName})
		case "23503", "23514", "22P02":
			return apperrors.NewValidationError(fmt.Sprintf("invalid %s reference", name), map[string]any{"constraint": pgErr.ConstraintName, "detail": pgErr.Detail})
		}
	}
	return fmt.Errorf("%s store: %w", name, err)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
