package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// expirySkew is subtracted from the token lifetime so a token is never used
// in its last minutes.
const expirySkew = 5 * time.Minute

// checkCooldown is how long Check reports a failed refresh before trying
// the token endpoint again.
const checkCooldown = 30 * time.Second

// CredentialStore persists the rotating refresh token between restarts.
type CredentialStore interface {
	GetRefreshToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
}

// TokenSource owns the marketplace OAuth token pair. It is safe for
// concurrent use; an expired token is refreshed by exactly one caller while
// the others wait for the result.
type TokenSource struct {
	tokenURL     string
	clientID     string
	clientSecret string
	configured   string
	store        CredentialStore
	httpClient   *http.Client
	now          func() time.Time
	log          *slog.Logger

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	lastErr      error
	failedAt     time.Time
}

// NewTokenSource creates a TokenSource from MarketplaceConfig. store may be nil.
func NewTokenSource(cfg config.MarketplaceConfig, store CredentialStore, logger *slog.Logger) *TokenSource {
	return &TokenSource{
		tokenURL:     strings.TrimRight(cfg.BaseURL, "/") + "/oauth/token",
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		configured:   cfg.RefreshToken,
		store:        store,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		now:          time.Now,
		log:          logger.With("adapter", "marketplace_token"),
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}

// Token returns a valid access token, refreshing it when there is none or
// when it expires within five minutes. Failures wrap domain.ErrMarketplaceAuth.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && s.now().Before(s.expiresAt.Add(-expirySkew)) {
		return s.accessToken, nil
	}

	if err := s.refresh(ctx); err != nil {
		s.lastErr, s.failedAt = err, s.now()
		return "", err
	}
	s.lastErr = nil
	return s.accessToken, nil
}

// Check reports whether a usable token is available. A refresh that failed
// less than checkCooldown ago is reported again without calling the token
// endpoint, so frequent health probes cannot hammer it.
func (s *TokenSource) Check(ctx context.Context) error {
	s.mu.Lock()
	if s.lastErr != nil && s.now().Sub(s.failedAt) < checkCooldown {
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	_, err := s.Token(ctx)
	return err
}

// Invalidate drops the cached access token so the next call refreshes it.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()
}

// refresh must be called with s.mu held.
func (s *TokenSource) refresh(ctx context.Context) error {
	if s.clientID == "" || s.clientSecret == "" {
		return fmt.Errorf("marketplace: client credentials not configured: %w", domain.ErrMarketplaceAuth)
	}

	refreshToken := s.currentRefreshToken(ctx)
	if refreshToken == "" {
		return fmt.Errorf("marketplace: no refresh token available: %w", domain.ErrMarketplaceAuth)
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("marketplace: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.ErrorContext(ctx, "token refresh failed", slog.String("error", err.Error()))
		return fmt.Errorf("marketplace: token request: %v: %w", err, domain.ErrMarketplaceAuth)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("marketplace: read token response: %v: %w", err, domain.ErrMarketplaceAuth)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.ErrorContext(ctx, "token refresh rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("marketplace: token refresh status %d: %w", resp.StatusCode, domain.ErrMarketplaceAuth)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("marketplace: decode token response: %v: %w", err, domain.ErrMarketplaceAuth)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("marketplace: token response without access_token: %w", domain.ErrMarketplaceAuth)
	}

	s.accessToken = tr.AccessToken
	s.expiresAt = s.now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	if tr.RefreshToken != "" && tr.RefreshToken != refreshToken {
		s.refreshToken = tr.RefreshToken
		s.persist(ctx, tr.RefreshToken)
	} else {
		s.refreshToken = refreshToken
	}

	s.log.InfoContext(ctx, "marketplace token refreshed",
		slog.Time("expires_at", s.expiresAt),
		slog.Int64("user_id", tr.UserID),
	)
	return nil
}

// currentRefreshToken picks the cached, then the persisted, then the
// configured refresh token.
func (s *TokenSource) currentRefreshToken(ctx context.Context) string {
	if s.refreshToken != "" {
		return s.refreshToken
	}
	if s.store != nil {
		token, err := s.store.GetRefreshToken(ctx)
		switch {
		case err == nil && token != "":
			return token
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			s.log.WarnContext(ctx, "load persisted refresh token", slog.String("error", err.Error()))
		}
	}
	return s.configured
}

func (s *TokenSource) persist(ctx context.Context, token string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveRefreshToken(ctx, token); err != nil {
		s.log.ErrorContext(ctx, "persist refresh token", slog.String("error", err.Error()))
	}
}
