package dto

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// timeLayouts are tried in order when decoding date fields. The second one is what an HTML
// datetime-local input submits.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// fieldErrors collects per-field messages and turns them into one validation error.
type fieldErrors map[string]any

func (f fieldErrors) add(field, msg string) {
	f[field] = msg
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError(message, f)
}

// optional returns nil for nil or blank input and a trimmed copy otherwise.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}

// NullableID is a reference field of a partial update. It records whether the key was sent
// at all, so that null or "" can unset the reference while an absent key leaves it alone.
type NullableID struct {
	Set   bool
	Value *string
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = optional(&s)
	return nil
}

// reference splits n into the new ID and a clear flag.
func (n NullableID) reference() (*string, bool) {
	if !n.Set {
		return nil, false
	}
	return n.Value, n.Value == nil
}
