package dto

import (
	"strings"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// CreateTicketRequest payload. Code and status are optional and defaulted by the service.
type CreateTicketRequest struct {
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueAt        string  `json:"dueAt"`
	RequesterID  *string `json:"requesterId"`
	TechnicianID *string `json:"technicianId"`
	LocationID   *string `json:"locationId"`
	RepairTypeID *string `json:"repairTypeId"`
}

// Validate parses enum and date fields into a ticket.
func (r CreateTicketRequest) Validate() (*domain.Ticket, error) {
	errs := fieldErrors{}
	ticket := &domain.Ticket{
		Code:         strings.TrimSpace(r.Code),
		Title:        strings.TrimSpace(r.Title),
		Description:  strings.TrimSpace(r.Description),
		Priority:     domain.ParseTicketPriority(r.Priority),
		RequesterID:  optional(r.RequesterID),
		TechnicianID: optional(r.TechnicianID),
		LocationID:   optional(r.LocationID),
		RepairTypeID: optional(r.RepairTypeID),
	}
	if ticket.Title == "" {
		errs.add("title", "required")
	}
	if ticket.Description == "" {
		errs.add("description", "required")
	}
	if strings.TrimSpace(r.Status) != "" {
		ticket.Status = domain.ParseTicketStatus(r.Status)
		if !ticket.Status.Valid() {
			errs.add("status", "must be one of open, in_progress, resolved, closed")
		}
	}
	if !ticket.Priority.Valid() {
		errs.add("priority", "must be one of P1, P2, P3, P4")
	}
	if strings.TrimSpace(r.DueAt) == "" {
		errs.add("dueAt", "required")
	} else if due, ok := parseTime(r.DueAt); ok {
		ticket.DueAt = due
	} else {
		errs.add("dueAt", "must be an RFC3339 timestamp")
	}
	if err := errs.err("invalid ticket"); err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateTicketRequest is a partial update; absent fields stay unchanged. Sending null or ""
// for a reference field unassigns it.
type UpdateTicketRequest struct {
	Code         *string    `json:"code"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	DueAt        *string    `json:"dueAt"`
	TechnicianID NullableID `json:"technicianId"`
	LocationID   NullableID `json:"locationId"`
	RepairTypeID NullableID `json:"repairTypeId"`
}

// Patch converts the request into a domain patch.
func (r UpdateTicketRequest) Patch() (domain.TicketPatch, error) {
	errs := fieldErrors{}
	patch := domain.TicketPatch{
		Code:        trimmed(r.Code),
		Title:       trimmed(r.Title),
		Description: trimmed(r.Description),
	}
	patch.TechnicianID, patch.ClearTechnician = r.TechnicianID.reference()
	patch.LocationID, patch.ClearLocation = r.LocationID.reference()
	patch.RepairTypeID, patch.ClearRepairType = r.RepairTypeID.reference()
	if r.Status != nil {
		status := domain.ParseTicketStatus(*r.Status)
		if !status.Valid() {
			errs.add("status", "must be one of open, in_progress, resolved, closed")
		}
		patch.Status = &status
	}
	if r.Priority != nil {
		priority := domain.ParseTicketPriority(*r.Priority)
		if !priority.Valid() {
			errs.add("priority", "must be one of P1, P2, P3, P4")
		}
		patch.Priority = &priority
	}
	if r.DueAt != nil {
		due, ok := parseTime(*r.DueAt)
		if !ok {
			errs.add("dueAt", "must be an RFC3339 timestamp")
		}
		patch.DueAt = &due
	}
	return patch, errs.err("invalid ticket")
}

// CreateTicketEventRequest payload. createdBy is taken from the caller.
type CreateTicketEventRequest struct {
	TicketID string `json:"ticketId"`
	Type     string `json:"type"`
	Note     string `json:"note"`
}

// Validate builds the event.
func (r CreateTicketEventRequest) Validate() (*domain.TicketEvent, error) {
	event := &domain.TicketEvent{
		TicketID: strings.TrimSpace(r.TicketID),
		Type:     domain.TicketEventType(strings.ToLower(strings.TrimSpace(r.Type))),
		Note:     r.Note,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateTicketEventRequest payload.
type UpdateTicketEventRequest struct {
	Type *string `json:"type"`
	Note *string `json:"note"`
}

func (r UpdateTicketEventRequest) Patch() (domain.TicketEventPatch, error) {
	patch := domain.TicketEventPatch{Note: r.Note}
	if r.Type != nil {
		eventType := domain.TicketEventType(strings.ToLower(strings.TrimSpace(*r.Type)))
		if eventType == "" {
			return patch, fieldErrors{"type": "must not be empty"}.err("invalid ticket event")
		}
		patch.Type = &eventType
	}
	return patch, nil
}
