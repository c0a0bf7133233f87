package app

import (
	"log/slog"
	"net/http"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/transport/middleware"
	"github.com/Redbeardred/Oberyn-v0.2/internal/transport/rest"
)

// newRouter registers every route and wraps the mux in the global
// middleware chain. Each route is instrumented under its own pattern.
func newRouter(
	cfg *config.Config,
	svc *services,
	storage pinger,
	metrics *middleware.Metrics,
	limiter *middleware.RateLimiter,
	logger *slog.Logger,
) http.Handler {
	authH := rest.NewAuthHandler(svc.auth, logger)
	questionH := rest.NewQuestionHandler(svc.questions, logger)
	suggestH := rest.NewSuggestHandler(svc.suggest, logger)
	productH := rest.NewProductHandler(svc.catalog, logger)
	adminH := rest.NewAdminHandler(svc.questions, logger)
	healthH := rest.NewHealthHandler(BuildVersion(),
		rest.HealthCheck{Name: "storage", Critical: true, Check: storage.Ping},
		rest.HealthCheck{Name: "marketplace", Check: svc.tokens.Check},
	)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, metrics.Instrument(pattern, h))
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	public := func(h http.HandlerFunc) http.Handler {
		if !cfg.RateLimit.Enabled {
			return h
		}
		return limiter.Limit("auth", cfg.RateLimit.AuthPerMinute)(h)
	}

	handle("POST /api/register", public(authH.Register))
	handle("POST /api/login", public(authH.Login))

	handle("GET /api/questions", protected(questionH.List))
	handle("POST /api/answer", protected(questionH.Answer))
	handle("POST /api/bulk-answer", protected(questionH.BulkAnswer))
	handle("POST /api/generate-answers", protected(suggestH.Generate))

	handle("GET /api/products", protected(productH.List))
	handle("GET /api/products/{id}", protected(productH.Get))
	handle("PATCH /api/products/{id}", protected(productH.Update))

	handle("POST /api/admin/sync", protected(adminH.Sync))

	mux.HandleFunc("GET /live", healthH.Live)
	mux.HandleFunc("GET /ready", healthH.Ready)
	mux.HandleFunc("GET /health", healthH.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	return middleware.Stack{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	}.
		When(cfg.RateLimit.Enabled, limiter.Limit("global", cfg.RateLimit.PerMinute)).
		With(middleware.Auth(svc.auth)).
		Then(mux)
}
