package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
	"github.com/Redbeardred/Oberyn-v0.2/pkg/ctxutil"
)

// SubmitAnswer posts the reply to the marketplace and, only once the post
// succeeded, records the answer and marks the question answered.
func (s *Service) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*domain.Answer, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("questions.SubmitAnswer: get question: %w", err)
	}
	if q.ExternalID != in.ExternalQuestionID {
		return nil, domain.NewValidationError("ml_question_id", "does not match question")
	}
	if q.IsAnswered() {
		return nil, fmt.Errorf("questions.SubmitAnswer: %w: question already answered", domain.ErrConflict)
	}

	text := strings.TrimSpace(in.Text)
	if err := s.market.PostAnswer(ctx, q.ExternalID, text); err != nil {
		return nil, fmt.Errorf("questions.SubmitAnswer: post answer: %w", err)
	}

	var answer *domain.Answer
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()
		a, err := s.answers.Create(ctx, &domain.Answer{
			ID:          uuid.New(),
			QuestionID:  q.ID,
			UserID:      userID,
			Text:        text,
			Sent:        true,
			AIGenerated: in.AIGenerated,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create answer: %w", err)
		}
		if err := s.questions.UpdateStatus(ctx, q.ID, domain.QuestionStatusAnswered); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		answer = a
		return nil
	})
	if err != nil {
		// The marketplace already shows the reply.
		s.log.ErrorContext(ctx, "answer posted but not recorded",
			slog.String("question_id", q.ID.String()),
			slog.Int64("ml_question_id", q.ExternalID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("questions.SubmitAnswer: %w", err)
	}

	s.log.InfoContext(ctx, "answer submitted",
		slog.String("question_id", q.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Bool("ai_generated", in.AIGenerated),
	)
	return answer, nil
}

// SubmitBatch submits each answer in order. A failing item is reported in
// its result and does not stop the others. Once ctx is done the remaining
// items are reported as failed with the context error, so the results
// still show which answers reached the marketplace.
func (s *Service) SubmitBatch(ctx context.Context, inputs []SubmitAnswerInput) ([]BatchItemResult, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("answers", "required")
	}
	if len(inputs) > s.cfg.MaxBatchSize {
		return nil, domain.NewValidationError("answers", fmt.Sprintf("at most %d answers per batch", s.cfg.MaxBatchSize))
	}

	results := make([]BatchItemResult, len(inputs))
	failed := 0
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(inputs); j++ {
				results[j] = BatchItemResult{QuestionID: inputs[j].QuestionID, Err: err}
			}
			failed += len(inputs) - i
			s.log.WarnContext(ctx, "batch interrupted",
				slog.Int("submitted", i),
				slog.Int("remaining", len(inputs)-i),
				slog.String("error", err.Error()),
			)
			break
		}
		a, err := s.SubmitAnswer(ctx, in)
		results[i] = BatchItemResult{QuestionID: in.QuestionID, Success: err == nil, Err: err, Answer: a}
		if err != nil {
			failed++
			if !errors.Is(err, domain.ErrValidation) {
				s.log.WarnContext(ctx, "batch item failed",
					slog.String("question_id", in.QuestionID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	s.log.InfoContext(ctx, "batch submitted",
		slog.Int("total", len(inputs)),
		slog.Int("failed", failed),
	)
	return results, nil
}
