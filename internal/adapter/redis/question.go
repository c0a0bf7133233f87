package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// QuestionRepo stores questions as hashes indexed by product and status.
type QuestionRepo struct {
	client *goredis.Client
}

// NewQuestionRepo creates a new question repository.
func NewQuestionRepo(client *goredis.Client) *QuestionRepo {
	return &QuestionRepo{client: client}
}

// Create claims the external question id and writes the hash and indexes
// atomically. A claim left pointing at a missing hash is taken over.
func (r *QuestionRepo) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	n, err := r.client.Exists(ctx, productKey(q.ProductID)).Result()
	if err != nil {
		return nil, mapError(err, "question", q.ExternalID)
	}
	if n == 0 {
		return nil, fmt.Errorf("question %d: product %s: %w", q.ExternalID, q.ProductID, domain.ErrNotFound)
	}

	claimed, err := claimRecord(ctx, r.client,
		questionExternalKey(q.ExternalID), questionPrefix, q.ID.String(), questionKey(q.ID),
		questionFields(q),
		productQuestionsKey(q.ProductID), questionStatusKey(q.Status),
	)
	if err != nil {
		return nil, mapError(err, "question", q.ExternalID)
	}
	if !claimed {
		return nil, fmt.Errorf("question %d: %w", q.ExternalID, domain.ErrAlreadyExists)
	}

	created := *q
	return &created, nil
}

// GetByID returns a question by primary key.
func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	m, err := r.client.HGetAll(ctx, questionKey(id)).Result()
	if err != nil {
		return nil, mapError(err, "question", id)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	return parseQuestion(m)
}

// GetByExternalID resolves the lookup key and returns the question.
func (r *QuestionRepo) GetByExternalID(ctx context.Context, externalID int64) (*domain.Question, error) {
	raw, err := r.client.Get(ctx, questionExternalKey(externalID)).Result()
	if err != nil {
		return nil, mapError(err, "question", externalID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("question %d: corrupt lookup key: %w", externalID, err)
	}
	return r.GetByID(ctx, id)
}

// ListByProduct returns all questions of a product, oldest first.
func (r *QuestionRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Question, error) {
	return r.listSet(ctx, productQuestionsKey(productID))
}

// ListByStatus returns all questions in the given status, oldest first.
func (r *QuestionRepo) ListByStatus(ctx context.Context, status domain.QuestionStatus) ([]domain.Question, error) {
	return r.listSet(ctx, questionStatusKey(status))
}

// UpdateStatus moves the question between status sets and rewrites its hash.
func (r *QuestionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuestionStatus) error {
	q, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, questionKey(id), "status", string(status), "updated_at", formatTime(time.Now()))
		pipe.SRem(ctx, questionStatusKey(q.Status), id.String())
		pipe.SAdd(ctx, questionStatusKey(status), id.String())
		return nil
	})
	return mapError(err, "question", id)
}

func (r *QuestionRepo) listSet(ctx context.Context, setKey string) ([]domain.Question, error) {
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, mapError(err, "questions", setKey)
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			keys = append(keys, questionKey(id))
		}
	}

	hashes, err := loadHashes(ctx, r.client, keys)
	if err != nil {
		return nil, mapError(err, "questions", setKey)
	}

	out := make([]domain.Question, 0, len(hashes))
	for _, m := range hashes {
		if m == nil {
			continue
		}
		q, err := parseQuestion(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func questionFields(q *domain.Question) map[string]any {
	return map[string]any{
		"id":          q.ID.String(),
		"external_id": strconv.FormatInt(q.ExternalID, 10),
		"product_id":  q.ProductID.String(),
		"text":        q.Text,
		"status":      string(q.Status),
		"created_at":  formatTime(q.CreatedAt),
		"updated_at":  formatTime(q.UpdatedAt),
	}
}

func parseQuestion(m map[string]string) (*domain.Question, error) {
	var (
		q   domain.Question
		err error
	)
	if q.ID, err = uuid.Parse(m["id"]); err != nil {
		return nil, fmt.Errorf("parse question id: %w", err)
	}
	if q.ExternalID, err = strconv.ParseInt(m["external_id"], 10, 64); err != nil {
		return nil, fmt.Errorf("parse question external_id: %w", err)
	}
	if q.ProductID, err = uuid.Parse(m["product_id"]); err != nil {
		return nil, fmt.Errorf("parse question product_id: %w", err)
	}
	q.Text = m["text"]
	q.Status = domain.QuestionStatus(m["status"])
	if q.CreatedAt, err = parseTime(m["created_at"]); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if q.UpdatedAt, err = parseTime(m["updated_at"]); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &q, nil
}
