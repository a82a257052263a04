package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/sla"
)

type monitorFixture struct {
	monitor    *SLAMonitor
	tickets    *fakeTicketRepo
	events     *fakeEventRepo
	state      *fakeMonitorState
	dispatcher *recordingDispatcher
	recorder   *countingRecorder
	now        time.Time
}

func newMonitorFixture() *monitorFixture {
	f := &monitorFixture{
		tickets:    newFakeTicketRepo(),
		events:     newFakeEventRepo(),
		state:      &fakeMonitorState{},
		dispatcher: newRecordingDispatcher(),
		recorder:   &countingRecorder{},
		now:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.monitor = NewSLAMonitor(SLAMonitorDependencies{
		TicketRepo: f.tickets,
		EventRepo:  f.events,
		StateRepo:  f.state,
		Dispatcher: f.dispatcher,
		Recorder:   f.recorder,
		Policy:     sla.NewPolicy(15 * time.Minute),
	})
	f.monitor.now = func() time.Time { return f.now }
	return f
}

func (f *monitorFixture) addTicket(priority domain.TicketPriority, status domain.TicketStatus, age time.Duration) domain.Ticket {
	ticket := domain.Ticket{
		ID:        uuid.NewString(),
		Code:      "TCK-" + uuid.NewString()[:4],
		Title:     "ticket",
		Status:    status,
		Priority:  priority,
		CreatedAt: f.now.Add(-age),
	}
	f.tickets.put(ticket)
	return ticket
}

func (f *monitorFixture) eventTypes(ticketID string) []domain.TicketEventType {
	timeline, _ := f.events.ListByTicket(context.Background(), ticketID)
	out := make([]domain.TicketEventType, 0, len(timeline))
	for _, e := range timeline {
		out = append(out, e.Type)
	}
	return out
}

func TestTickWritesBreachOnce(t *testing.T) {
	f := newMonitorFixture()
	breached := f.addTicket(domain.TicketPriorityP1, domain.TicketStatusOpen, 30*time.Minute)
	ctx := context.Background()

	run, err := f.monitor.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, run.Scanned)
	assert.Equal(t, 1, run.Breaches)
	assert.Equal(t, []domain.TicketEventType{domain.EventTypeSLAResponseBreach}, f.eventTypes(breached.ID))

	timeline, _ := f.events.ListByTicket(ctx, breached.ID)
	assert.Equal(t, domain.SystemActor, timeline[0].CreatedBy)

	run, err = f.monitor.Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, run.Breaches)
	assert.Len(t, f.eventTypes(breached.ID), 1)

	assert.Equal(t, 1, f.recorder.counts[string(domain.EventTypeSLAResponseBreach)])
	assert.Contains(t, f.dispatcher.types(), events.EventSLABreach)
	assert.Len(t, f.state.runs, 2)
}

func TestTickWarnsInsideWindow(t *testing.T) {
	f := newMonitorFixture()
	atRisk := f.addTicket(domain.TicketPriorityP2, domain.TicketStatusOpen, 50*time.Minute)
	fresh := f.addTicket(domain.TicketPriorityP4, domain.TicketStatusOpen, time.Minute)

	run, err := f.monitor.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Warnings)
	assert.Equal(t, []domain.TicketEventType{domain.EventTypeSLAResponseWarning}, f.eventTypes(atRisk.ID))
	assert.Empty(t, f.eventTypes(fresh.ID))

	f.now = f.now.Add(20 * time.Minute)
	run, err = f.monitor.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Breaches)
	assert.Equal(t, []domain.TicketEventType{
		domain.EventTypeSLAResponseWarning,
		domain.EventTypeSLAResponseBreach,
	}, f.eventTypes(atRisk.ID))
}

func TestTickIgnoresRespondedAndDoneTickets(t *testing.T) {
	f := newMonitorFixture()
	responded := f.addTicket(domain.TicketPriorityP1, domain.TicketStatusInProgress, 30*time.Minute)
	require.NoError(t, f.events.Create(context.Background(), &domain.TicketEvent{
		TicketID: responded.ID, Type: domain.EventTypeAcknowledged, CreatedBy: "tech-1",
	}))
	f.addTicket(domain.TicketPriorityP1, domain.TicketStatusResolved, 10*time.Hour)

	run, err := f.monitor.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Scanned)
	assert.Zero(t, run.Breaches)
	assert.Zero(t, run.Warnings)
}

func TestTickSkipsWhenLocked(t *testing.T) {
	f := newMonitorFixture()
	f.addTicket(domain.TicketPriorityP1, domain.TicketStatusOpen, time.Hour)
	f.state.locked = true

	run, err := f.monitor.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, run.Skipped)
	assert.Zero(t, run.Scanned)
	assert.Empty(t, f.state.runs)
}

func TestStatisticsGroupsTickets(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()
	f.addTicket(domain.TicketPriorityP1, domain.TicketStatusOpen, time.Hour)
	f.addTicket(domain.TicketPriorityP3, domain.TicketStatusOpen, time.Minute)
	f.addTicket(domain.TicketPriorityP2, domain.TicketStatusInProgress, time.Minute)
	f.addTicket(domain.TicketPriorityP4, domain.TicketStatusClosed, time.Minute)

	_, err := f.monitor.Tick(ctx)
	require.NoError(t, err)

	report, err := f.monitor.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Summary.TotalTickets)
	assert.Equal(t, 1, report.Summary.BreachedTotal)
	assert.Equal(t, "75.0", report.Summary.Overall)

	opening := report.Groups[GroupOpening]
	assert.Equal(t, 2, opening.Total)
	assert.Equal(t, 1, opening.ResponseSLA.Breached)
	assert.Equal(t, 1, opening.ResponseSLA.OnTime)
	assert.Equal(t, "50.0", opening.ResponseSLA.ComplianceRate)
	assert.Equal(t, 1, opening.PriorityBreakdown[domain.TicketPriorityP1])
	assert.Equal(t, 0, opening.PriorityBreakdown[domain.TicketPriorityP2])

	assert.Equal(t, 1, report.Groups[GroupOnRepair].Total)
	assert.Equal(t, 1, report.Groups[GroupWorkDone].Total)
	assert.Equal(t, "100.0", report.Groups[GroupWorkDone].ResolveSLA.ComplianceRate)
	assert.Equal(t, int64(1), report.Queue.Completed)
}

func TestClearJobsResetsStats(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	_, err := f.monitor.Trigger(ctx)
	require.NoError(t, err)
	require.NoError(t, f.monitor.ClearJobs(ctx))

	stats, err := f.monitor.Status(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Completed)
}

func TestSLABreachMailsAdmins(t *testing.T) {
	f := newMonitorFixture()
	ctx := context.Background()

	roles := newFakeRoleRepo()
	users := newFakeUserRepo(roles)
	adminRole := &domain.Role{Name: domain.RoleAdmin}
	require.NoError(t, roles.Create(ctx, adminRole))
	require.NoError(t, users.Create(ctx, &domain.User{Email: "boss@example.com", Name: "Boss", RoleID: &adminRole.ID}))
	require.NoError(t, users.Create(ctx, &domain.User{Email: "someone@example.com", Name: "Someone"}))

	mailer := &fakeMailer{}
	notifications := NewNotificationService(f.dispatcher, NewUserService(users, 4), mailer, zap.NewNop(), config.MailConfig{FrontendURL: "http://app"})
	notifications.RegisterHandlers()

	f.addTicket(domain.TicketPriorityP1, domain.TicketStatusOpen, time.Hour)
	_, err := f.monitor.Tick(ctx)
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"boss@example.com"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "SLA BREACH")
}
