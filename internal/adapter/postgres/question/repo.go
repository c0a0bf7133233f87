// Package question implements the Question repository using PostgreSQL.
package question

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const table = "questions"

var columns = []string{"id", "external_id", "product_id", "text", "status", "created_at", "updated_at"}

// Repo provides question persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new question repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a question. A duplicate external id yields domain.ErrAlreadyExists,
// an unknown product yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	b := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(q.ID, q.ExternalID, q.ProductID, q.Text, string(q.Status), q.CreatedAt, q.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.one(ctx, b, q.ExternalID)
}

// GetByID returns a question by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	return r.one(ctx, b, id)
}

// GetByExternalID returns a question by marketplace question id.
func (r *Repo) GetByExternalID(ctx context.Context, externalID int64) (*domain.Question, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"external_id": externalID})
	return r.one(ctx, b, externalID)
}

// ListByProduct returns all questions of a product, oldest first.
func (r *Repo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Question, error) {
	b := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at", "id")
	return r.many(ctx, b, productID)
}

// ListByStatus returns all questions in the given status, oldest first.
func (r *Repo) ListByStatus(ctx context.Context, status domain.QuestionStatus) ([]domain.Question, error) {
	b := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("created_at", "id")
	return r.many(ctx, b, status)
}

// UpdateStatus sets the question status and bumps updated_at.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error {
	b := postgres.Builder().Update(table).
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	tag, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return postgres.MapError(err, "question", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) one(ctx context.Context, b squirrel.Sqlizer, key any) (*domain.Question, error) {
	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, err
	}

	q, err := scanQuestion(row)
	if err != nil {
		return nil, postgres.MapError(err, "question", key)
	}
	return q, nil
}

func (r *Repo) many(ctx context.Context, b squirrel.Sqlizer, key any) ([]domain.Question, error) {
	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, postgres.MapError(err, "questions", key)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, postgres.MapError(err, "questions", key)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "questions", key)
	}
	return out, nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var (
		q      domain.Question
		status string
	)
	if err := row.Scan(&q.ID, &q.ExternalID, &q.ProductID, &q.Text, &status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, err
	}
	q.Status = domain.QuestionStatus(status)
	return &q, nil
}
