package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// AttachmentRepository persists attachment metadata. File bytes live under the upload dir.
type AttachmentRepository interface {
	CRUD[domain.Attachment]
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

const attachmentColumns = `id, ticket_id, url, type, created_at`

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (ticket_id, url, type)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.URL,
		attachment.Type,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) List(ctx context.Context) ([]domain.Attachment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+attachmentColumns+` FROM attachments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAttachment)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	return scanAttachment(r.pool.QueryRow(ctx, `SELECT `+attachmentColumns+` FROM attachments WHERE id=$1`, id))
}

func (r *attachmentRepository) Update(ctx context.Context, attachment *domain.Attachment) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE attachments SET ticket_id=$1, url=$2, type=$3 WHERE id=$4`,
		attachment.TicketID,
		attachment.URL,
		attachment.Type,
		attachment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) (*domain.Attachment, error) {
	return scanAttachment(r.pool.QueryRow(ctx, `DELETE FROM attachments WHERE id=$1 RETURNING `+attachmentColumns, id))
}

func scanAttachment(row rowScanner) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := row.Scan(
		&attachment.ID,
		&attachment.TicketID,
		&attachment.URL,
		&attachment.Type,
		&attachment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &attachment, nil
}
