package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// AnswerRepo stores answers as hashes indexed by question.
type AnswerRepo struct {
	client *goredis.Client
}

// NewAnswerRepo creates a new answer repository.
func NewAnswerRepo(client *goredis.Client) *AnswerRepo {
	return &AnswerRepo{client: client}
}

// Create writes the answer hash and links it to its question.
func (r *AnswerRepo) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	n, err := r.client.Exists(ctx, questionKey(a.QuestionID)).Result()
	if err != nil {
		return nil, mapError(err, "answer", a.ID)
	}
	if n == 0 {
		return nil, fmt.Errorf("answer %s: question %s: %w", a.ID, a.QuestionID, domain.ErrNotFound)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, answerKey(a.ID), answerFields(a))
		pipe.SAdd(ctx, questionAnswersKey(a.QuestionID), a.ID.String())
		return nil
	})
	if err != nil {
		return nil, mapError(err, "answer", a.ID)
	}

	created := *a
	return &created, nil
}

// GetByID returns an answer by primary key.
func (r *AnswerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Answer, error) {
	m, err := r.client.HGetAll(ctx, answerKey(id)).Result()
	if err != nil {
		return nil, mapError(err, "answer", id)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("answer %s: %w", id, domain.ErrNotFound)
	}
	return parseAnswer(m)
}

// ListByQuestion returns the answers of a question, oldest first.
func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	out, err := r.listSets(ctx, []string{questionAnswersKey(questionID)})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ListByProduct returns up to limit answers given to any question of the
// product, newest first.
func (r *AnswerRepo) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]domain.Answer, error) {
	questionIDs, err := r.client.SMembers(ctx, productQuestionsKey(productID)).Result()
	if err != nil {
		return nil, mapError(err, "answers", productID)
	}

	sets := make([]string, 0, len(questionIDs))
	for _, raw := range questionIDs {
		if id, err := uuid.Parse(raw); err == nil {
			sets = append(sets, questionAnswersKey(id))
		}
	}

	out, err := r.listSets(ctx, sets)
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AnswerRepo) listSets(ctx context.Context, sets []string) ([]domain.Answer, error) {
	if len(sets) == 0 {
		return nil, nil
	}

	ids, err := r.client.SUnion(ctx, sets...).Result()
	if err != nil {
		return nil, mapError(err, "answers", sets[0])
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			keys = append(keys, answerKey(id))
		}
	}

	hashes, err := loadHashes(ctx, r.client, keys)
	if err != nil {
		return nil, mapError(err, "answers", sets[0])
	}

	out := make([]domain.Answer, 0, len(hashes))
	for _, m := range hashes {
		if m == nil {
			continue
		}
		a, err := parseAnswer(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, nil
}

func answerFields(a *domain.Answer) map[string]any {
	return map[string]any{
		"id":           a.ID.String(),
		"question_id":  a.QuestionID.String(),
		"user_id":      a.UserID.String(),
		"text":         a.Text,
		"is_sent":      formatBool(a.Sent),
		"ai_generated": formatBool(a.AIGenerated),
		"created_at":   formatTime(a.CreatedAt),
		"updated_at":   formatTime(a.UpdatedAt),
	}
}

func parseAnswer(m map[string]string) (*domain.Answer, error) {
	var (
		a   domain.Answer
		err error
	)
	if a.ID, err = uuid.Parse(m["id"]); err != nil {
		return nil, fmt.Errorf("parse answer id: %w", err)
	}
	if a.QuestionID, err = uuid.Parse(m["question_id"]); err != nil {
		return nil, fmt.Errorf("parse answer question_id: %w", err)
	}
	if a.UserID, err = uuid.Parse(m["user_id"]); err != nil {
		return nil, fmt.Errorf("parse answer user_id: %w", err)
	}
	a.Text = m["text"]
	a.Sent, _ = strconv.ParseBool(m["is_sent"])
	a.AIGenerated, _ = strconv.ParseBool(m["ai_generated"])
	if a.CreatedAt, err = parseTime(m["created_at"]); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(m["updated_at"]); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &a, nil
}
