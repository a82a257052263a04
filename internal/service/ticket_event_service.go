package service

import (
	"context"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// TicketEventService manages timeline entries. Every event needs an existing ticket.
type TicketEventService struct {
	*Resource[domain.TicketEvent, domain.TicketEventPatch]
	tickets repository.TicketRepository
}

// NewTicketEventService constructs the service.
func NewTicketEventService(eventsRepo repository.TicketEventRepository, tickets repository.TicketRepository) *TicketEventService {
	return &TicketEventService{
		Resource: NewResource[domain.TicketEvent, domain.TicketEventPatch]("ticket event", eventsRepo, (*domain.TicketEvent).Validate),
		tickets:  tickets,
	}
}

// Create checks the parent ticket and stamps the acting user when createdBy is empty.
func (s *TicketEventService) Create(ctx context.Context, event *domain.TicketEvent) (*domain.TicketEvent, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if !validID(event.TicketID) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": event.TicketID})
	}
	if _, err := s.tickets.GetByID(ctx, event.TicketID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": event.TicketID})
		}
		return nil, err
	}
	if event.CreatedBy == "" {
		event.CreatedBy = ActorFromContext(ctx)
	}
	return s.Resource.Create(ctx, event)
}
