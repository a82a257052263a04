package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// RepairType classifies the kind of work a ticket needs (plumbing, electrical, ...).
type RepairType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *RepairType) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("invalid repair type", map[string]any{"name": "required"})
	}
	return nil
}

// RepairTypePatch carries the fields of a partial repair type update.
type RepairTypePatch struct {
	Name        *string
	Description *string
	Color       *string
}

func (p RepairTypePatch) Apply(r *RepairType) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Color != nil {
		r.Color = *p.Color
	}
}
