package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// SurveyRepository persists satisfaction surveys.
type SurveyRepository interface {
	CRUD[domain.Survey]
}

type surveyRepository struct {
	pool *pgxpool.Pool
}

// NewSurveyRepository returns a Postgres-backed implementation.
func NewSurveyRepository(pool *pgxpool.Pool) SurveyRepository {
	return &surveyRepository{pool: pool}
}

const surveyColumns = `id, ticket_id, score, comment, created_at`

func (r *surveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	const query = `
        INSERT INTO surveys (ticket_id, score, comment)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, survey.TicketID, survey.Score, survey.Comment).
		Scan(&survey.ID, &survey.CreatedAt)
}

func (r *surveyRepository) List(ctx context.Context) ([]domain.Survey, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+surveyColumns+` FROM surveys ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSurvey)
}

func (r *surveyRepository) GetByID(ctx context.Context, id string) (*domain.Survey, error) {
	return scanSurvey(r.pool.QueryRow(ctx, `SELECT `+surveyColumns+` FROM surveys WHERE id=$1`, id))
}

func (r *surveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE surveys SET score=$1, comment=$2 WHERE id=$3`,
		survey.Score,
		survey.Comment,
		survey.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *surveyRepository) Delete(ctx context.Context, id string) (*domain.Survey, error) {
	return scanSurvey(r.pool.QueryRow(ctx, `DELETE FROM surveys WHERE id=$1 RETURNING `+surveyColumns, id))
}

func scanSurvey(row rowScanner) (*domain.Survey, error) {
	var survey domain.Survey
	if err := row.Scan(&survey.ID, &survey.TicketID, &survey.Score, &survey.Comment, &survey.CreatedAt); err != nil {
		return nil, err
	}
	return &survey, nil
}
