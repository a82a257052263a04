package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/notify"
)

type memStore[T any] struct {
	mu    sync.Mutex
	items map[string]T
	order []string
	id    func(*T) *string
	stamp func(*T, time.Time)
}

func newMemStore[T any](id func(*T) *string, stamp func(*T, time.Time)) *memStore[T] {
	return &memStore[T]{items: map[string]T{}, id: id, stamp: stamp}
}

func (s *memStore[T]) Create(_ context.Context, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.id(entity) = uuid.NewString()
	if s.stamp != nil {
		s.stamp(entity, time.Now())
	}
	s.items[*s.id(entity)] = *entity
	s.order = append(s.order, *s.id(entity))
	return nil
}

func (s *memStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *memStore[T]) GetByID(_ context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (s *memStore[T]) Update(_ context.Context, entity *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := *s.id(entity)
	if _, ok := s.items[id]; !ok {
		return pgx.ErrNoRows
	}
	s.items[id] = *entity
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &item, nil
}

func (s *memStore[T]) filter(keep func(T) bool) []T {
	all, _ := s.List(context.Background())
	out := make([]T, 0)
	for _, item := range all {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// put stores entity as is, keeping its id and timestamps.
func (s *memStore[T]) put(entity T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := *s.id(&entity)
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = entity
}

type fakeTicketRepo struct{ *memStore[domain.Ticket] }

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{newMemStore(
		func(t *domain.Ticket) *string { return &t.ID },
		func(t *domain.Ticket, now time.Time) { t.CreatedAt, t.UpdatedAt = now, now },
	)}
}

func (r *fakeTicketRepo) ListActive(context.Context) ([]domain.Ticket, error) {
	return r.filter(func(t domain.Ticket) bool { return !t.Status.Done() }), nil
}

type fakeEventRepo struct{ *memStore[domain.TicketEvent] }

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{newMemStore(
		func(e *domain.TicketEvent) *string { return &e.ID },
		func(e *domain.TicketEvent, now time.Time) { e.CreatedAt = now },
	)}
}

func (r *fakeEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	return r.filter(func(e domain.TicketEvent) bool { return e.TicketID == ticketID }), nil
}

type fakeRoleRepo struct{ *memStore[domain.Role] }

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{newMemStore(
		func(r *domain.Role) *string { return &r.ID },
		func(r *domain.Role, now time.Time) { r.CreatedAt = now },
	)}
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	matches := r.filter(func(role domain.Role) bool { return strings.EqualFold(role.Name, name) })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &matches[0], nil
}

type fakeUserRepo struct {
	*memStore[domain.User]
	roles *fakeRoleRepo
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{
		memStore: newMemStore(
			func(u *domain.User) *string { return &u.ID },
			func(u *domain.User, now time.Time) { u.CreatedAt, u.UpdatedAt = now, now },
		),
		roles: roles,
	}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	matches := r.filter(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &matches[0], nil
}

func (r *fakeUserRepo) ListByRoleName(ctx context.Context, role string) ([]domain.User, error) {
	found, err := r.roles.GetByName(ctx, role)
	if err != nil {
		return []domain.User{}, nil
	}
	return r.filter(func(u domain.User) bool { return u.RoleID != nil && *u.RoleID == found.ID }), nil
}

type fakeLocationRepo struct{ *memStore[domain.Location] }

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{newMemStore(
		func(l *domain.Location) *string { return &l.ID },
		func(l *domain.Location, now time.Time) { l.CreatedAt, l.UpdatedAt = now, now },
	)}
}

type fakeMonitorState struct {
	mu     sync.Mutex
	locked bool
	runs   []domain.MonitorRun
}

func (f *fakeMonitorState) AcquireLock(context.Context, time.Duration) (func(context.Context) error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		return nil, nil
	}
	f.locked = true
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.locked = false
		return nil
	}, nil
}

func (f *fakeMonitorState) Locked(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locked, nil
}

func (f *fakeMonitorState) RecordRun(_ context.Context, run domain.MonitorRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeMonitorState) Stats(context.Context) (domain.MonitorStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := domain.MonitorStats{Active: f.locked}
	for _, run := range f.runs {
		if run.Error != "" {
			stats.Failed++
		} else {
			stats.Completed++
		}
	}
	return stats, nil
}

func (f *fakeMonitorState) Reset(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = nil
	return nil
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
	inner     events.Dispatcher
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{inner: events.NewInMemoryDispatcher()}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	d.mu.Unlock()
	return d.inner.Publish(ctx, event)
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {
	d.inner.Subscribe(eventType, handler)
}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordSLAEvent(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[eventType]++
}
