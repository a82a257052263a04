package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	*Resource[domain.Ticket, domain.TicketPatch]
	tickets    repository.TicketRepository
	events     repository.TicketEventRepository
	dispatcher events.Dispatcher
	policy     sla.Policy
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	EventRepo  repository.TicketEventRepository
	Dispatcher events.Dispatcher
	Policy     sla.Policy
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		Resource:   NewResource[domain.Ticket, domain.TicketPatch]("ticket", deps.TicketRepo, (*domain.Ticket).Validate),
		tickets:    deps.TicketRepo,
		events:     deps.EventRepo,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		logger:     logger,
		now:        time.Now,
	}
}

// Create fills in a generated code and the open status when absent, then persists.
func (s *TicketService) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if strings.TrimSpace(ticket.Code) == "" {
		ticket.Code = generateTicketCode()
	}
	if ticket.Status == "" {
		ticket.Status = domain.TicketStatusOpen
	}
	if ticket.RequesterID == nil {
		if actor := ActorFromContext(ctx); actor != domain.SystemActor {
			ticket.RequesterID = &actor
		}
	}

	created, err := s.Resource.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventTicketCreated, created.ID, ActorFromContext(ctx), events.TicketPayload{Ticket: *created}))
	return created, nil
}

// Update applies a partial update. A status change also appends a status_change event.
func (s *TicketService) Update(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status

	patch.Apply(ticket)
	updated, err := s.save(ctx, id, ticket)
	if err != nil {
		return nil, err
	}

	actor := ActorFromContext(ctx)
	if updated.Status != oldStatus {
		event := &domain.TicketEvent{
			TicketID:  updated.ID,
			Type:      domain.EventTypeStatusChange,
			Note:      fmt.Sprintf("%s -> %s", oldStatus, updated.Status),
			CreatedBy: actor,
		}
		if err := s.events.Create(ctx, event); err != nil {
			return nil, fmt.Errorf("record status change: %w", err)
		}
		s.publish(ctx, events.New(events.EventTicketStatusChanged, updated.ID, actor, events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		}))
	}
	s.publish(ctx, events.New(events.EventTicketUpdated, updated.ID, actor, events.TicketPayload{Ticket: *updated}))
	return updated, nil
}

// Delete removes the ticket; its events and surveys go with it.
func (s *TicketService) Delete(ctx context.Context, id string) (*domain.Ticket, error) {
	deleted, err := s.Resource.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventTicketDeleted, deleted.ID, ActorFromContext(ctx), events.TicketPayload{Ticket: *deleted}))
	return deleted, nil
}

// Events returns the ticket's timeline in creation order.
func (s *TicketService) Events(ctx context.Context, id string) ([]domain.TicketEvent, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.events.ListByTicket(ctx, id)
}

// SLA evaluates the ticket's response and resolution clocks now.
func (s *TicketService) SLA(ctx context.Context, id string) (sla.Status, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return sla.Status{}, err
	}
	timeline, err := s.events.ListByTicket(ctx, id)
	if err != nil {
		return sla.Status{}, err
	}
	return s.policy.Evaluate(sla.SubjectFor(ticket, timeline), s.now())
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.String("ticket_id", event.TicketID), zap.Error(err))
	}
}

func generateTicketCode() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
