package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

// SLAEventRecorder counts the warnings and breaches the monitor writes.
type SLAEventRecorder interface {
	RecordSLAEvent(eventType string)
}

// SLAMonitor scans open tickets, writes sla_* timeline events once per ticket and
// milestone, and reports run statistics.
type SLAMonitor struct {
	tickets    repository.TicketRepository
	events     repository.TicketEventRepository
	state      repository.MonitorStateRepository
	dispatcher events.Dispatcher
	recorder   SLAEventRecorder
	policy     sla.Policy
	lockTTL    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// SLAMonitorDependencies bundles collaborators for the monitor.
type SLAMonitorDependencies struct {
	TicketRepo repository.TicketRepository
	EventRepo  repository.TicketEventRepository
	StateRepo  repository.MonitorStateRepository
	Dispatcher events.Dispatcher
	Recorder   SLAEventRecorder
	Policy     sla.Policy
	LockTTL    time.Duration
	Logger     *zap.Logger
}

// NewSLAMonitor constructs the monitor.
func NewSLAMonitor(deps SLAMonitorDependencies) *SLAMonitor {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	lockTTL := deps.LockTTL
	if lockTTL <= 0 {
		lockTTL = 4 * time.Minute
	}
	return &SLAMonitor{
		tickets:    deps.TicketRepo,
		events:     deps.EventRepo,
		state:      deps.StateRepo,
		dispatcher: deps.Dispatcher,
		recorder:   deps.Recorder,
		policy:     deps.Policy,
		lockTTL:    lockTTL,
		logger:     logger.Named("sla_monitor"),
		now:        time.Now,
	}
}

type slaMilestone struct {
	name    string
	warning domain.TicketEventType
	breach  domain.TicketEventType
}

var (
	responseMilestone = slaMilestone{"response", domain.EventTypeSLAResponseWarning, domain.EventTypeSLAResponseBreach}
	resolveMilestone  = slaMilestone{"resolution", domain.EventTypeSLAResolveWarning, domain.EventTypeSLAResolveBreach}
)

// Tick runs one monitor pass. When another replica holds the run lock the pass is
// skipped. A failure on one ticket is logged and does not stop the pass.
func (m *SLAMonitor) Tick(ctx context.Context) (domain.MonitorRun, error) {
	run := domain.MonitorRun{StartedAt: m.now()}

	release, err := m.acquire(ctx)
	if err != nil {
		m.logger.Warn("run lock unavailable; continuing without it", zap.Error(err))
	} else if release == nil {
		run.Skipped = true
		m.logger.Info("another SLA monitor run is active; skipping")
		return run, nil
	} else {
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("release run lock", zap.Error(err))
			}
		}()
	}

	runErr := m.scan(ctx, &run)
	run.Duration = time.Since(run.StartedAt)
	run.DurationMs = run.Duration.Milliseconds()
	if runErr != nil {
		run.Error = runErr.Error()
	}

	if m.state != nil {
		if err := m.state.RecordRun(ctx, run); err != nil {
			m.logger.Warn("record run", zap.Error(err))
		}
	}

	m.logger.Info("SLA monitor run finished",
		zap.Int("scanned", run.Scanned),
		zap.Int("warnings", run.Warnings),
		zap.Int("breaches", run.Breaches),
		zap.Duration("duration", run.Duration),
		zap.Error(runErr),
	)
	return run, runErr
}

func (m *SLAMonitor) acquire(ctx context.Context) (func(context.Context) error, error) {
	if m.state == nil {
		return func(context.Context) error { return nil }, nil
	}
	return m.state.AcquireLock(ctx, m.lockTTL)
}

func (m *SLAMonitor) scan(ctx context.Context, run *domain.MonitorRun) error {
	active, err := m.tickets.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active tickets: %w", err)
	}

	now := m.now()
	for i := range active {
		if err := ctx.Err(); err != nil {
			return err
		}
		ticket := &active[i]
		run.Scanned++

		timeline, err := m.events.ListByTicket(ctx, ticket.ID)
		if err != nil {
			m.logger.Error("list ticket events", zap.String("ticket_id", ticket.ID), zap.Error(err))
			continue
		}
		status, err := m.policy.Evaluate(sla.SubjectFor(ticket, timeline), now)
		if err != nil {
			m.logger.Warn("evaluate SLA", zap.String("ticket_id", ticket.ID), zap.Error(err))
			continue
		}

		m.check(ctx, run, ticket, timeline, responseMilestone, status.Response)
		m.check(ctx, run, ticket, timeline, resolveMilestone, status.Resolve)
	}
	return nil
}

func (m *SLAMonitor) check(ctx context.Context, run *domain.MonitorRun, ticket *domain.Ticket, timeline []domain.TicketEvent, ms slaMilestone, state sla.Milestone) {
	if domain.HasEventType(timeline, ms.breach) {
		return
	}
	switch {
	case state.Breaching:
		note := fmt.Sprintf("%s SLA breached (due %s)", ms.name, state.DueAt.UTC().Format(time.RFC3339))
		if m.record(ctx, ticket, ms, ms.breach, note, state.DueAt, events.EventSLABreach) {
			run.Breaches++
		}
	case state.AtRisk && !domain.HasEventType(timeline, ms.warning):
		note := fmt.Sprintf("approaching %s SLA (due %s)", ms.name, state.DueAt.UTC().Format(time.RFC3339))
		if m.record(ctx, ticket, ms, ms.warning, note, state.DueAt, events.EventSLAWarning) {
			run.Warnings++
		}
	}
}

func (m *SLAMonitor) record(ctx context.Context, ticket *domain.Ticket, ms slaMilestone, eventType domain.TicketEventType, note string, dueAt time.Time, published events.EventType) bool {
	entry := &domain.TicketEvent{
		TicketID:  ticket.ID,
		Type:      eventType,
		Note:      note,
		CreatedBy: domain.SystemActor,
	}
	if err := m.events.Create(ctx, entry); err != nil {
		m.logger.Error("write SLA event", zap.String("ticket_id", ticket.ID), zap.String("type", string(eventType)), zap.Error(err))
		return false
	}
	if m.recorder != nil {
		m.recorder.RecordSLAEvent(string(eventType))
	}
	if m.dispatcher != nil {
		payload := events.SLAPayload{Ticket: *ticket, EventType: eventType, Milestone: ms.name, DueAt: dueAt}
		if err := m.dispatcher.Publish(ctx, events.New(published, ticket.ID, domain.SystemActor, payload)); err != nil {
			m.logger.Warn("SLA notification failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}
	return true
}

// Trigger runs a pass immediately.
func (m *SLAMonitor) Trigger(ctx context.Context) (domain.MonitorRun, error) {
	return m.Tick(ctx)
}

// Status returns the persisted run counters.
func (m *SLAMonitor) Status(ctx context.Context) (domain.MonitorStats, error) {
	if m.state == nil {
		return domain.MonitorStats{}, nil
	}
	return m.state.Stats(ctx)
}

// ClearJobs resets the run counters.
func (m *SLAMonitor) ClearJobs(ctx context.Context) error {
	if m.state == nil {
		return nil
	}
	return m.state.Reset(ctx)
}
