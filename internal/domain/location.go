package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// Location is a place where maintenance can be requested.
type Location struct {
	ID        string    `json:"id"`
	Building  string    `json:"building"`
	Floor     string    `json:"floor"`
	Room      string    `json:"room"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Location) Validate() error {
	if strings.TrimSpace(l.Building) == "" {
		return apperrors.NewValidationError("invalid location", map[string]any{"building": "required"})
	}
	return nil
}

// LocationPatch carries the fields of a partial location update.
type LocationPatch struct {
	Building *string
	Floor    *string
	Room     *string
}

func (p LocationPatch) Apply(l *Location) {
	if p.Building != nil {
		l.Building = *p.Building
	}
	if p.Floor != nil {
		l.Floor = *p.Floor
	}
	if p.Room != nil {
		l.Room = *p.Room
	}
}
