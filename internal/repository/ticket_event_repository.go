package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// TicketEventRepository stores the append-only ticket timeline.
type TicketEventRepository interface {
	CRUD[domain.TicketEvent]
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error)
}

type ticketEventRepository struct {
	pool *pgxpool.Pool
}

// NewTicketEventRepository returns a Postgres-backed implementation.
func NewTicketEventRepository(pool *pgxpool.Pool) TicketEventRepository {
	return &ticketEventRepository{pool: pool}
}

const ticketEventColumns = `id, ticket_id, type, note, created_by, created_at`

func (r *ticketEventRepository) Create(ctx context.Context, event *domain.TicketEvent) error {
	const query = `
        INSERT INTO ticket_events (ticket_id, type, note, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		event.TicketID,
		event.Type,
		event.Note,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *ticketEventRepository) List(ctx context.Context) ([]domain.TicketEvent, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ticketEventColumns+` FROM ticket_events ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTicketEvent)
}

func (r *ticketEventRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketEvent, error) {
	const query = `SELECT ` + ticketEventColumns + ` FROM ticket_events WHERE ticket_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTicketEvent)
}

func (r *ticketEventRepository) GetByID(ctx context.Context, id string) (*domain.TicketEvent, error) {
	return scanTicketEvent(r.pool.QueryRow(ctx, `SELECT `+ticketEventColumns+` FROM ticket_events WHERE id=$1`, id))
}

func (r *ticketEventRepository) Update(ctx context.Context, event *domain.TicketEvent) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE ticket_events SET type=$1, note=$2 WHERE id=$3`,
		event.Type,
		event.Note,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketEventRepository) Delete(ctx context.Context, id string) (*domain.TicketEvent, error) {
	return scanTicketEvent(r.pool.QueryRow(ctx, `DELETE FROM ticket_events WHERE id=$1 RETURNING `+ticketEventColumns, id))
}

func scanTicketEvent(row rowScanner) (*domain.TicketEvent, error) {
	var event domain.TicketEvent
	if err := row.Scan(
		&event.ID,
		&event.TicketID,
		&event.Type,
		&event.Note,
		&event.CreatedBy,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}
