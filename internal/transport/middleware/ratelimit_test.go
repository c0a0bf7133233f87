package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit("api", 10)(okHandler())

	for i := 0; i < 10; i++ {
		rec := serve(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit("api", 5)(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(handler, "1.2.3.4:1234").Code)
	}

	rec := serve(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimiter_SameIPDifferentPorts(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit("api", 1)(okHandler())

	assert.Equal(t, http.StatusOK, serve(handler, "1.2.3.4:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "1.2.3.4:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit("api", 2)(okHandler())

	for i := 0; i < 2; i++ {
		serve(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, serve(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_ScopesIndependent(t *testing.T) {
	rl, _ := newTestLimiter(t)
	login := rl.Limit("auth", 1)(okHandler())
	api := rl.Limit("api", 1)(okHandler())

	assert.Equal(t, http.StatusOK, serve(login, "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusOK, serve(api, "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(login, "1.1.1.1:1").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl, now := newTestLimiter(t)

	// 60 per minute = 1 per second
	handler := rl.Limit("api", 60)(okHandler())

	for i := 0; i < 60; i++ {
		serve(handler, "3.3.3.3:1234")
	}
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, "3.3.3.3:1234").Code)

	*now = now.Add(1100 * time.Millisecond)

	assert.Equal(t, http.StatusOK, serve(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, now := newTestLimiter(t)
	handler := rl.Limit("api", 5)(okHandler())

	serve(handler, "4.4.4.4:1")
	serve(handler, "5.5.5.5:1")

	*now = now.Add(idleVisitorTTL / 2)
	serve(handler, "5.5.5.5:1")

	*now = now.Add(idleVisitorTTL/2 + time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "api|4.4.4.4")
	assert.Contains(t, rl.visitors, "api|5.5.5.5")
}

func TestRateLimiter_ZeroBudgetDisabled(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit("api", 0)(okHandler())

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, serve(handler, "1.2.3.4:1234").Code)
	}
}
