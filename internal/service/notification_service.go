package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/notify"
)

// AdminDirectory lists the accounts that receive SLA mail.
type AdminDirectory interface {
	Admins(ctx context.Context) ([]domain.User, error)
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	admins     AdminDirectory
	mailer     notify.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, admins AdminDirectory, mailer notify.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		admins:     admins,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.logEvent)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.logEvent)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.logEvent)
	n.dispatcher.Subscribe(events.EventSLAWarning, n.handleSLA)
	n.dispatcher.Subscribe(events.EventSLABreach, n.handleSLA)
}

func (n *NotificationService) logEvent(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("ticket_id", event.TicketID), zap.String("actor", event.Actor))
	return nil
}

func (n *NotificationService) handleSLA(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SLAPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}

	admins, err := n.admins.Admins(ctx)
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}
	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}
	if len(recipients) == 0 {
		n.logger.Warn("no admin users to notify", zap.String("ticket_id", event.TicketID))
		return nil
	}

	msg := notify.SLAMessage(notify.SLANotice{
		TicketID:    payload.Ticket.ID,
		TicketCode:  payload.Ticket.Code,
		TicketTitle: payload.Ticket.Title,
		Milestone:   payload.Milestone,
		DueAt:       payload.DueAt,
		Breached:    event.Type == events.EventSLABreach,
		FrontendURL: n.cfg.FrontendURL,
	}, recipients)

	if err := n.mailer.Send(ctx, msg); err != nil {
		return err
	}
	n.logger.Info("SLA notification sent",
		zap.String("ticket_id", event.TicketID),
		zap.String("type", string(payload.EventType)),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}
