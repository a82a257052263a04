package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ParseTicketStatus normalizes casing and the hyphenated "in-progress" spelling.
func ParseTicketStatus(raw string) TicketStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	return TicketStatus(normalized)
}

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Done reports whether the resolution milestone has been reached.
func (s TicketStatus) Done() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// TicketPriority enumerates SLA urgency, P1 being the most urgent.
type TicketPriority string

const (
	TicketPriorityP1 TicketPriority = "P1"
	TicketPriorityP2 TicketPriority = "P2"
	TicketPriorityP3 TicketPriority = "P3"
	TicketPriorityP4 TicketPriority = "P4"
)

// TicketPriorities lists priorities from most to least urgent.
var TicketPriorities = []TicketPriority{TicketPriorityP1, TicketPriorityP2, TicketPriorityP3, TicketPriorityP4}

// ParseTicketPriority upper-cases the raw value.
func ParseTicketPriority(raw string) TicketPriority {
	return TicketPriority(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether the priority is one of P1..P4.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityP1, TicketPriorityP2, TicketPriorityP3, TicketPriorityP4:
		return true
	}
	return false
}

// Ticket is the aggregate for maintenance requests.
type Ticket struct {
	ID           string         `json:"id"`
	Code         string         `json:"code"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       TicketStatus   `json:"status"`
	Priority     TicketPriority `json:"priority"`
	DueAt        time.Time      `json:"dueAt"`
	RequesterID  *string        `json:"requesterId,omitempty"`
	TechnicianID *string        `json:"technicianId,omitempty"`
	LocationID   *string        `json:"locationId,omitempty"`
	RepairTypeID *string        `json:"repairTypeId,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Validate checks required fields and enum values.
func (t *Ticket) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(t.Code) == "" {
		details["code"] = "required"
	}
	if strings.TrimSpace(t.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(t.Description) == "" {
		details["description"] = "required"
	}
	if !t.Status.Valid() {
		details["status"] = "must be one of open, in_progress, resolved, closed"
	}
	if !t.Priority.Valid() {
		details["priority"] = "must be one of P1, P2, P3, P4"
	}
	if t.DueAt.IsZero() {
		details["dueAt"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid ticket", details)
	}
	return nil
}

// TicketPatch carries the fields of a partial ticket update; nil means unchanged.
// The Clear* flags unset a reference and win over the matching ID.
type TicketPatch struct {
	Code         *string
	Title        *string
	Description  *string
	Status       *TicketStatus
	Priority     *TicketPriority
	DueAt        *time.Time
	TechnicianID *string
	LocationID   *string
	RepairTypeID *string

	ClearTechnician bool
	ClearLocation   bool
	ClearRepairType bool
}

// Apply merges the provided fields into t.
func (p TicketPatch) Apply(t *Ticket) {
	if p.Code != nil {
		t.Code = *p.Code
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueAt != nil {
		t.DueAt = *p.DueAt
	}
	t.TechnicianID = applyRef(t.TechnicianID, p.TechnicianID, p.ClearTechnician)
	t.LocationID = applyRef(t.LocationID, p.LocationID, p.ClearLocation)
	t.RepairTypeID = applyRef(t.RepairTypeID, p.RepairTypeID, p.ClearRepairType)
}

func applyRef(current, next *string, clear bool) *string {
	switch {
	case clear:
		return nil
	case next != nil:
		return next
	default:
		return current
	}
}
