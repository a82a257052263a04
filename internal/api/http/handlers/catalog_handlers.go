package handlers

import (
	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/domain"
)

type (
	// TicketEventsHandler serves /ticket-events.
	TicketEventsHandler = ResourceHandler[domain.TicketEvent, domain.TicketEventPatch, dto.CreateTicketEventRequest, dto.UpdateTicketEventRequest]
	// RolesHandler serves /roles.
	RolesHandler = ResourceHandler[domain.Role, domain.RolePatch, dto.RoleRequest, dto.RoleRequest]
	// LocationsHandler serves /locations.
	LocationsHandler = ResourceHandler[domain.Location, domain.LocationPatch, dto.LocationRequest, dto.LocationRequest]
	// RepairTypesHandler serves /repair-types.
	RepairTypesHandler = ResourceHandler[domain.RepairType, domain.RepairTypePatch, dto.RepairTypeRequest, dto.RepairTypeRequest]
	// SurveysHandler serves /surveys.
	SurveysHandler = ResourceHandler[domain.Survey, domain.SurveyPatch, dto.SurveyRequest, dto.SurveyRequest]
	// AttachmentsHandler serves /attachments.
	AttachmentsHandler = ResourceHandler[domain.Attachment, domain.AttachmentPatch, dto.AttachmentRequest, dto.AttachmentRequest]
)

func NewTicketEventsHandler(svc ResourceService[domain.TicketEvent, domain.TicketEventPatch]) *TicketEventsHandler {
	return NewResourceHandler[domain.TicketEvent, domain.TicketEventPatch, dto.CreateTicketEventRequest, dto.UpdateTicketEventRequest](svc)
}

func NewRolesHandler(svc ResourceService[domain.Role, domain.RolePatch]) *RolesHandler {
	return NewResourceHandler[domain.Role, domain.RolePatch, dto.RoleRequest, dto.RoleRequest](svc)
}

func NewLocationsHandler(svc ResourceService[domain.Location, domain.LocationPatch]) *LocationsHandler {
	return NewResourceHandler[domain.Location, domain.LocationPatch, dto.LocationRequest, dto.LocationRequest](svc)
}

func NewRepairTypesHandler(svc ResourceService[domain.RepairType, domain.RepairTypePatch]) *RepairTypesHandler {
	return NewResourceHandler[domain.RepairType, domain.RepairTypePatch, dto.RepairTypeRequest, dto.RepairTypeRequest](svc)
}

func NewSurveysHandler(svc ResourceService[domain.Survey, domain.SurveyPatch]) *SurveysHandler {
	return NewResourceHandler[domain.Survey, domain.SurveyPatch, dto.SurveyRequest, dto.SurveyRequest](svc)
}

func NewAttachmentsHandler(svc ResourceService[domain.Attachment, domain.AttachmentPatch]) *AttachmentsHandler {
	return NewResourceHandler[domain.Attachment, domain.AttachmentPatch, dto.AttachmentRequest, dto.AttachmentRequest](svc)
}
