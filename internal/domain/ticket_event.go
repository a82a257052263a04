package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketEventType identifies what happened to a ticket.
type TicketEventType string

const (
	EventTypeStatusChange TicketEventType = "status_change"
	EventTypeComment      TicketEventType = "comment"
	EventTypeAssignment   TicketEventType = "assignment"
	EventTypeAcknowledged TicketEventType = "acknowledged"

	EventTypeSLAResponseWarning TicketEventType = "sla_response_warning"
	EventTypeSLAResponseBreach  TicketEventType = "sla_response_breach"
	EventTypeSLAResolveWarning  TicketEventType = "sla_resolve_warning"
	EventTypeSLAResolveBreach   TicketEventType = "sla_resolve_breach"
)

// SystemActor is the createdBy value of events written by the service itself.
const SystemActor = "system"

// IsSLA reports whether the event was written by the SLA monitor.
func (t TicketEventType) IsSLA() bool {
	return strings.HasPrefix(string(t), "sla_")
}

// CountsAsResponse reports whether the event type marks a first response on the ticket.
func (t TicketEventType) CountsAsResponse() bool {
	switch t {
	case EventTypeStatusChange, EventTypeComment, EventTypeAssignment, EventTypeAcknowledged:
		return true
	}
	return false
}

// TicketEvent is an append-only entry on a ticket's timeline.
type TicketEvent struct {
	ID        string          `json:"id"`
	TicketID  string          `json:"ticketId"`
	Type      TicketEventType `json:"type"`
	Note      string          `json:"note"`
	CreatedBy string          `json:"createdBy"`
	CreatedAt time.Time       `json:"createdAt"`
}

// IsResponse reports whether the event is a human first-response milestone.
func (e TicketEvent) IsResponse() bool {
	return e.Type.CountsAsResponse() && e.CreatedBy != SystemActor
}

// Validate checks required fields.
func (e *TicketEvent) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(e.TicketID) == "" {
		details["ticketId"] = "required"
	}
	if strings.TrimSpace(string(e.Type)) == "" {
		details["type"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid ticket event", details)
	}
	return nil
}

// TicketEventPatch carries the mutable fields of an event.
type TicketEventPatch struct {
	Type *TicketEventType
	Note *string
}

// Apply merges the provided fields into e.
func (p TicketEventPatch) Apply(e *TicketEvent) {
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
}

// HasResponse reports whether any event in the list is a first response. Events written by
// the requester, such as a follow-up comment on their own ticket, do not count.
func HasResponse(events []TicketEvent, requesterID string) bool {
	for _, e := range events {
		if e.IsResponse() && (requesterID == "" || e.CreatedBy != requesterID) {
			return true
		}
	}
	return false
}

// HasEventType reports whether the list contains an event of the given type.
func HasEventType(events []TicketEvent, eventType TicketEventType) bool {
	for _, e := range events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}
