package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// AttachmentType discriminates stored media.
type AttachmentType string

const (
	AttachmentTypeImage AttachmentType = "IMAGE"
	AttachmentTypeVideo AttachmentType = "VIDEO"
)

// ParseAttachmentType upper-cases the raw value.
func ParseAttachmentType(raw string) AttachmentType {
	return AttachmentType(strings.ToUpper(strings.TrimSpace(raw)))
}

func (t AttachmentType) Valid() bool {
	return t == AttachmentTypeImage || t == AttachmentTypeVideo
}

// Attachment references a stored media file, optionally bound to a ticket.
type Attachment struct {
	ID        string         `json:"id"`
	TicketID  *string        `json:"ticketId,omitempty"`
	URL       string         `json:"url"`
	Type      AttachmentType `json:"type"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (a *Attachment) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(a.URL) == "" {
		details["url"] = "required"
	}
	if !a.Type.Valid() {
		details["type"] = "must be IMAGE or VIDEO"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid attachment", details)
	}
	return nil
}

// AttachmentPatch carries the fields of a partial attachment update.
type AttachmentPatch struct {
	TicketID *string
	URL      *string
	Type     *AttachmentType
}

func (p AttachmentPatch) Apply(a *Attachment) {
	if p.TicketID != nil {
		a.TicketID = p.TicketID
	}
	if p.URL != nil {
		a.URL = *p.URL
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
}
