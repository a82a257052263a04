package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-service/internal/api/dto"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

// TicketService is the ticket workflow surface used by the handler.
type TicketService interface {
	ResourceService[domain.Ticket, domain.TicketPatch]
	SLA(ctx context.Context, id string) (sla.Status, error)
	Events(ctx context.Context, id string) ([]domain.TicketEvent, error)
}

// TicketsHandler serves the ticket resource plus its SLA view and timeline.
type TicketsHandler struct {
	*ResourceHandler[domain.Ticket, domain.TicketPatch, dto.CreateTicketRequest, dto.UpdateTicketRequest]
	tickets TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService TicketService) *TicketsHandler {
	return &TicketsHandler{
		ResourceHandler: NewResourceHandler[domain.Ticket, domain.TicketPatch, dto.CreateTicketRequest, dto.UpdateTicketRequest](ticketService),
		tickets:         ticketService,
	}
}

// SLA GET /tickets/:id/sla.
func (h *TicketsHandler) SLA(c *fiber.Ctx) error {
	status, err := h.tickets.SLA(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// Events GET /tickets/:id/events, oldest first.
func (h *TicketsHandler) Events(c *fiber.Ctx) error {
	timeline, err := h.tickets.Events(requestContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	if timeline == nil {
		timeline = []domain.TicketEvent{}
	}
	return c.JSON(timeline)
}
