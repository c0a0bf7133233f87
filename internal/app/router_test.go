package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Redbeardred/Oberyn-v0.2/internal/adapter/redis"
	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/service/questions"
	"github.com/Redbeardred/Oberyn-v0.2/internal/transport/middleware"
	"github.com/Redbeardred/Oberyn-v0.2/internal/transport/rest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr(), DialTimeout: time.Second})
	require.NoError(t, err)
	store := newRedisStorage(client)
	t.Cleanup(store.close)

	cfg := &config.Config{
		Auth:        config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "test", SessionTTL: time.Hour, PasswordHashCost: 4},
		Marketplace: config.MarketplaceConfig{BaseURL: "http://127.0.0.1:0", Timeout: time.Second},
		CORS:        config.CORSConfig{AllowedOrigins: "*"},
		RateLimit:   config.RateLimitConfig{Enabled: false},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := newServices(cfg, store, logger)
	require.NoError(t, err)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(newRouter(cfg, svc, store.pinger, middleware.NewMetrics(prometheus.NewRegistry()), limiter, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_RegisterLoginAndProtectedRoutes(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	creds := map[string]string{"name": "Vendedor", "email": "ventas@tienda.com", "password": "secreto1"}

	resp := postJSON(t, srv.URL+"/api/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	// No session.
	resp = postJSON(t, srv.URL+"/api/generate-answers", "", map[string]any{})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Session present, but no LLM provider is configured.
	resp = postJSON(t, srv.URL+"/api/generate-answers", login.Token, map[string]any{
		"question_id":    "6f1c1c7e-8e5a-4c0b-9b8f-1f0e2d3c4b5a",
		"ml_question_id": 1,
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// Regular users cannot trigger an admin sync.
	resp = postJSON(t, srv.URL+"/api/admin/sync", login.Token, map[string]any{})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	var health rest.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	// No marketplace credentials are configured, so only the optional check fails.
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "ok", health.Components["storage"].Status)
	assert.Equal(t, "down", health.Components["marketplace"].Status)

	resp, err = http.Get(srv.URL + "/api/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `route="GET /api/products"`), "metrics should carry the route pattern")
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	writeSummary(&buf, &questions.SyncResult{Fetched: 5, Created: 2, Existing: 3})
	assert.Contains(t, buf.String(), "created:  2")
}
