package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Built-in role names carried in the token's role claim.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTechnician = "technician"
	RoleUser       = "user"
)

// AllRoles lists every built-in role.
var AllRoles = []string{RoleAdmin, RoleSupervisor, RoleTechnician, RoleUser}

// Role names a permission level assignable to users.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks required fields.
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidationError("invalid role", map[string]any{"name": "required"})
	}
	return nil
}

// RolePatch carries the fields of a partial role update.
type RolePatch struct {
	Name *string
}

// Apply merges the provided fields into r.
func (p RolePatch) Apply(r *Role) {
	if p.Name != nil {
		r.Name = *p.Name
	}
}
