package questions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// ListUnanswered synchronises and returns the open questions grouped by
// marketplace item id, each group titled with the live listing title.
func (s *Service) ListUnanswered(ctx context.Context) (map[string]*QuestionGroup, error) {
	res, err := s.Sync(ctx)
	if err != nil {
		return nil, fmt.Errorf("questions.ListUnanswered: %w", err)
	}
	if len(res.FailedIDs) > 0 {
		// Still open on the marketplace but without a local record to
		// answer against; the next sync retries them.
		s.log.WarnContext(ctx, "open questions omitted from listing",
			slog.Int("count", len(res.FailedIDs)),
			slog.Any("ml_question_ids", res.FailedIDs),
		)
	}

	groups := make(map[string]*QuestionGroup)
	for _, mq := range res.Open {
		local, ok := res.Questions[mq.ID]
		if !ok {
			continue
		}
		g, ok := groups[mq.ItemID]
		if !ok {
			g = &QuestionGroup{}
			groups[mq.ItemID] = g
		}
		g.Questions = append(g.Questions, GroupedQuestion{
			ID:                 local.ID,
			ExternalQuestionID: mq.ID,
			ItemID:             mq.ItemID,
			Text:               local.Text,
			DateCreated:        mq.DateCreated,
		})
	}

	itemIDs := make([]string, 0, len(groups))
	for id := range groups {
		itemIDs = append(itemIDs, id)
	}
	for id, title := range s.FetchTitles(ctx, itemIDs) {
		groups[id].Title = title
	}
	return groups, nil
}

// FetchTitles looks up listing titles concurrently. An id whose lookup
// fails maps to the unknown-product placeholder; other ids are unaffected.
func (s *Service) FetchTitles(ctx context.Context, itemIDs []string) map[string]string {
	titles := make(map[string]string, len(itemIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.TitleConcurrency)

	for _, id := range itemIDs {
		g.Go(func() error {
			title := domain.UnknownProductTitle
			item, err := s.market.GetItem(gctx, id)
			switch {
			case err != nil:
				s.log.WarnContext(gctx, "title lookup failed",
					slog.String("item_id", id),
					slog.String("error", err.Error()),
				)
			case item.Title != "":
				title = item.Title
			}

			mu.Lock()
			titles[id] = title
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return titles
}
