package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/llm"
	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/marketplace"
	jwtauth "github.com/Redbeardred/Oberyn-v0.2/internal/auth"
	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/auth"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/catalog"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/questions"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/suggest"
	"github.com/Redbeardred/Oberyn-v0.2/internal/transport/middleware"
)

// Run is the application entry point. It loads configuration, connects the
// storage driver, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.close()

	svc, err := newServices(cfg, store, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := newRouter(cfg, svc, store.pinger, middleware.NewMetrics(reg), limiter, logger)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// services holds the wired application services.
type services struct {
	auth      *auth.Service
	questions *questions.Service
	suggest   *suggest.Service
	catalog   *catalog.Service
	tokens    *marketplace.TokenSource
}

func newServices(cfg *config.Config, store *storage, logger *slog.Logger) (*services, error) {
	tokens, market := newMarketplaceClient(cfg, store, logger)

	completer, err := llm.New(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	if completer == nil {
		logger.Warn("no LLM provider configured, answer suggestions disabled")
	}

	suggestSvc, err := suggest.NewService(logger, store.questions, store.products, store.answers, completer, suggest.Config{
		TemplatePath:    cfg.LLM.PromptTemplatePath,
		PreviousAnswers: cfg.LLM.PreviousAnswers,
	})
	if err != nil {
		return nil, err
	}

	return &services{
		auth: auth.NewService(
			logger,
			store.users,
			jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL),
			cfg.Auth,
		),
		questions: questions.NewService(logger, market, store.products, store.questions, store.answers, store.tx, questions.Config{
			SellerID:         cfg.Marketplace.SellerID,
			SearchLimit:      cfg.Marketplace.SearchLimit,
			TitleConcurrency: cfg.Marketplace.TitleConcurrency,
			MaxBatchSize:     cfg.Questions.MaxBatchSize,
		}),
		suggest: suggestSvc,
		catalog: catalog.NewService(logger, store.products),
		tokens:  tokens,
	}, nil
}

func newMarketplaceClient(cfg *config.Config, store *storage, logger *slog.Logger) (*marketplace.TokenSource, *marketplace.Client) {
	if !cfg.Marketplace.HasCredentials() {
		logger.Warn("marketplace credentials missing, question calls will fail until configured")
	}
	tokens := marketplace.NewTokenSource(cfg.Marketplace, store.credentials, logger)
	return tokens, marketplace.NewClient(cfg.Marketplace, tokens, logger)
}
