package dto

import (
	"strings"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// RoleRequest is used for both create and update of roles.
type RoleRequest struct {
	Name *string `json:"name"`
}

func (r RoleRequest) Validate() (*domain.Role, error) {
	role := &domain.Role{}
	if r.Name != nil {
		role.Name = strings.ToLower(strings.TrimSpace(*r.Name))
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	return role, nil
}

func (r RoleRequest) Patch() (domain.RolePatch, error) {
	if r.Name == nil {
		return domain.RolePatch{}, nil
	}
	name := strings.ToLower(strings.TrimSpace(*r.Name))
	if name == "" {
		return domain.RolePatch{}, fieldErrors{"name": "must not be empty"}.err("invalid role")
	}
	return domain.RolePatch{Name: &name}, nil
}

// LocationRequest is used for both create and update of locations.
type LocationRequest struct {
	Building *string `json:"building"`
	Floor    *string `json:"floor"`
	Room     *string `json:"room"`
}

func (r LocationRequest) Validate() (*domain.Location, error) {
	loc := &domain.Location{}
	if v := trimmed(r.Building); v != nil {
		loc.Building = *v
	}
	if v := trimmed(r.Floor); v != nil {
		loc.Floor = *v
	}
	if v := trimmed(r.Room); v != nil {
		loc.Room = *v
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

func (r LocationRequest) Patch() (domain.LocationPatch, error) {
	return domain.LocationPatch{
		Building: trimmed(r.Building),
		Floor:    trimmed(r.Floor),
		Room:     trimmed(r.Room),
	}, nil
}

// RepairTypeRequest is used for both create and update of repair types.
type RepairTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (r RepairTypeRequest) Validate() (*domain.RepairType, error) {
	rt := &domain.RepairType{}
	if v := trimmed(r.Name); v != nil {
		rt.Name = *v
	}
	if v := trimmed(r.Description); v != nil {
		rt.Description = *v
	}
	if v := trimmed(r.Color); v != nil {
		rt.Color = *v
	}
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r RepairTypeRequest) Patch() (domain.RepairTypePatch, error) {
	name := trimmed(r.Name)
	if name != nil && *name == "" {
		return domain.RepairTypePatch{}, fieldErrors{"name": "must not be empty"}.err("invalid repair type")
	}
	return domain.RepairTypePatch{
		Name:        name,
		Description: trimmed(r.Description),
		Color:       trimmed(r.Color),
	}, nil
}

// SurveyRequest is used for both create and update of surveys.
type SurveyRequest struct {
	TicketID string  `json:"ticketId"`
	Score    *int    `json:"score"`
	Comment  *string `json:"comment"`
}

func (r SurveyRequest) Validate() (*domain.Survey, error) {
	survey := &domain.Survey{TicketID: strings.TrimSpace(r.TicketID)}
	if r.Score != nil {
		survey.Score = *r.Score
	}
	if r.Comment != nil {
		survey.Comment = *r.Comment
	}
	if err := survey.Validate(); err != nil {
		return nil, err
	}
	return survey, nil
}

func (r SurveyRequest) Patch() (domain.SurveyPatch, error) {
	if r.Score != nil && (*r.Score < domain.SurveyScoreMin || *r.Score > domain.SurveyScoreMax) {
		return domain.SurveyPatch{}, fieldErrors{"score": "must be between 1 and 5"}.err("invalid survey")
	}
	return domain.SurveyPatch{Score: r.Score, Comment: r.Comment}, nil
}

// AttachmentRequest is used for both create and update of attachment records.
type AttachmentRequest struct {
	TicketID *string `json:"ticketId"`
	URL      *string `json:"url"`
	Type     *string `json:"type"`
}

func (r AttachmentRequest) Validate() (*domain.Attachment, error) {
	att := &domain.Attachment{TicketID: optional(r.TicketID)}
	if v := trimmed(r.URL); v != nil {
		att.URL = *v
	}
	if r.Type != nil {
		att.Type = domain.ParseAttachmentType(*r.Type)
	}
	if err := att.Validate(); err != nil {
		return nil, err
	}
	return att, nil
}

func (r AttachmentRequest) Patch() (domain.AttachmentPatch, error) {
	patch := domain.AttachmentPatch{TicketID: trimmed(r.TicketID), URL: trimmed(r.URL)}
	if r.Type != nil {
		t := domain.ParseAttachmentType(*r.Type)
		if !t.Valid() {
			return patch, fieldErrors{"type": "must be IMAGE or VIDEO"}.err("invalid attachment")
		}
		patch.Type = &t
	}
	return patch, nil
}
