package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/marketplace"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// Sync fetches the seller's unanswered questions and stores the ones not
// seen before, creating their products on first sighting. Failures of a
// single question are logged and counted; they never abort the run.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	if s.cfg.SellerID == "" {
		return nil, domain.NewValidationError("seller_id", "marketplace seller id is not configured")
	}

	fetched, err := s.market.SearchUnansweredQuestions(ctx, s.cfg.SellerID, s.cfg.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("questions.Sync: %w", err)
	}

	res := &SyncResult{
		Fetched:   len(fetched),
		Questions: make(map[int64]*domain.Question, len(fetched)),
	}

	for _, mq := range fetched {
		if !mq.IsOpen() {
			continue
		}
		if mq.ID == 0 || mq.ItemID == "" {
			s.log.WarnContext(ctx, "skipping question without id or item",
				slog.Int64("ml_question_id", mq.ID),
				slog.String("item_id", mq.ItemID),
			)
			res.Skipped++
			continue
		}

		q, created, err := s.syncQuestion(ctx, mq)
		if err != nil {
			s.log.ErrorContext(ctx, "question sync failed",
				slog.Int64("ml_question_id", mq.ID),
				slog.String("item_id", mq.ItemID),
				slog.String("error", err.Error()),
			)
			res.Failed++
			res.FailedIDs = append(res.FailedIDs, mq.ID)
			continue
		}

		if created {
			res.Created++
		} else {
			res.Existing++
		}
		res.Questions[mq.ID] = q
		res.Open = append(res.Open, mq)
	}

	s.log.InfoContext(ctx, "questions synced",
		slog.Int("fetched", res.Fetched),
		slog.Int("created", res.Created),
		slog.Int("existing", res.Existing),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

// syncQuestion returns the stored question for mq, creating it when unseen.
func (s *Service) syncQuestion(ctx context.Context, mq marketplace.Question) (*domain.Question, bool, error) {
	existing, err := s.questions.GetByExternalID(ctx, mq.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("lookup question: %w", err)
	}

	// Product and question are written separately: a failure in between
	// leaves a product without questions, which the next run reuses.
	product, err := s.resolveProduct(ctx, mq.ItemID)
	if err != nil {
		return nil, false, err
	}

	text := strings.TrimSpace(mq.Text)
	if text == "" {
		text = domain.EmptyQuestionText
	}

	now := time.Now().UTC()
	q, err := s.questions.Create(ctx, &domain.Question{
		ID:         uuid.New(),
		ExternalID: mq.ID,
		ProductID:  product.ID,
		Text:       text,
		Status:     domain.QuestionStatusUnanswered,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent sync.
		existing, err := s.questions.GetByExternalID(ctx, mq.ID)
		if err != nil {
			return nil, false, fmt.Errorf("lookup question: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create question: %w", err)
	}
	return q, true, nil
}

// resolveProduct finds the product for itemID or creates it from the
// marketplace listing. A listing that cannot be fetched still yields a
// product with a placeholder title.
func (s *Service) resolveProduct(ctx context.Context, itemID string) (*domain.Product, error) {
	p, err := s.products.GetByExternalID(ctx, itemID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	now := time.Now().UTC()
	p = &domain.Product{
		ID:         uuid.New(),
		ExternalID: itemID,
		Title:      domain.UnknownProductTitle,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	item, err := s.market.GetItem(ctx, itemID)
	if err != nil {
		s.log.WarnContext(ctx, "item details unavailable",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()),
		)
	} else {
		if item.Title != "" {
			p.Title = item.Title
		}
		p.Attributes = domain.ProductAttributes{
			Permalink:         item.Permalink,
			Price:             item.Price,
			CurrencyID:        item.CurrencyID,
			AvailableQuantity: item.AvailableQuantity,
			Thumbnail:         item.Thumbnail,
		}
	}

	created, err := s.products.Create(ctx, p)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return s.products.GetByExternalID(ctx, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}
