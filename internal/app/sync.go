package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/questions"
)

// RunSync performs one question synchronisation and writes a summary to out.
func RunSync(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	_, market := newMarketplaceClient(cfg, store, logger)
	svc := questions.NewService(logger, market,
		store.products, store.questions, store.answers, store.tx, questions.Config{
			SellerID:    cfg.Marketplace.SellerID,
			SearchLimit: cfg.Marketplace.SearchLimit,
		})

	res, err := svc.Sync(ctx)
	if err != nil {
		logger.Error("sync failed", slog.String("error", err.Error()))
		return err
	}

	writeSummary(out, res)
	return nil
}

func writeSummary(out io.Writer, res *questions.SyncResult) {
	fmt.Fprintf(out, "fetched:  %d\n", res.Fetched)
	fmt.Fprintf(out, "created:  %d\n", res.Created)
	fmt.Fprintf(out, "existing: %d\n", res.Existing)
	fmt.Fprintf(out, "skipped:  %d\n", res.Skipped)
	fmt.Fprintf(out, "failed:   %d\n", res.Failed)
}
