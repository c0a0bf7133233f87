// Package answer implements the Answer repository using PostgreSQL.
package answer

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const table = "answers"

var columns = []string{"id", "question_id", "user_id", "text", "is_sent", "ai_generated", "created_at", "updated_at"}

// Repo provides answer persistence backed by PostgreSQL. Answers are
// insert-only.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new answer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts an answer.
func (r *Repo) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	b := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(a.ID, a.QuestionID, a.UserID, a.Text, a.Sent, a.AIGenerated, a.CreatedAt, a.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, err
	}
	created, err := scanAnswer(row)
	if err != nil {
		return nil, postgres.MapError(err, "answer", a.ID)
	}
	return created, nil
}

// GetByID returns an answer by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	b := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, err
	}
	a, err := scanAnswer(row)
	if err != nil {
		return nil, postgres.MapError(err, "answer", id)
	}
	return a, nil
}

// ListByQuestion returns the answers of a question, oldest first.
func (r *Repo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	b := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"question_id": questionID}).
		OrderBy("created_at", "id")
	return r.many(ctx, b, questionID)
}

// ListByProduct returns up to limit answers given to any question of the
// product, newest first.
func (r *Repo) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error) {
	qualified := make([]string, len(columns))
	for i, c := range columns {
		qualified[i] = "a." + c
	}

	b := postgres.Builder().Select(qualified...).
		From(table + " a").
		Join("questions q ON q.id = a.question_id").
		Where(squirrel.Eq{"q.product_id": productID}).
		OrderBy("a.created_at DESC", "a.id").
		Limit(uint64(max(limit, 0)))
	return r.many(ctx, b, productID)
}

func (r *Repo) many(ctx context.Context, b squirrel.Sqlizer, key any) ([]domain.Answer, error) {
	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return nil, postgres.MapError(err, "answers", key)
	}
	defer rows.Close()

	var out []domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, postgres.MapError(err, "answers", key)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "answers", key)
	}
	return out, nil
}

func scanAnswer(row pgx.Row) (*domain.Answer, error) {
	var a domain.Answer
	if err := row.Scan(&a.ID, &a.QuestionID, &a.UserID, &a.Text, &a.Sent, &a.AIGenerated, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
