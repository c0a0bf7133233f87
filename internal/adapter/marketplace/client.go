// Package marketplace is the MercadoLibre API client: OAuth token handling,
// question search, item lookup and answer posting.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Redbeardred/Oberyn-v0.2/internal/config"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the marketplace API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marketplace: status %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return domain.ErrUpstream }

// TokenProvider supplies bearer tokens for API calls.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Client calls the marketplace REST API with a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	limiter    *rate.Limiter
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client. Outbound calls are limited to
// cfg.RequestsPerSecond.
func NewClient(cfg config.MarketplaceConfig, tokens TokenProvider, logger *slog.Logger) *Client {
	burst := max(int(cfg.RequestsPerSecond), 1)
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "marketplace"),
	}
}

// SearchUnansweredQuestions returns up to limit unanswered questions of the seller.
func (c *Client) SearchUnansweredQuestions(ctx context.Context, sellerID string, limit int) ([]Question, error) {
	query := url.Values{
		"seller_id":   {sellerID},
		"status":      {"UNANSWERED"},
		"limit":       {strconv.Itoa(limit)},
		"api_version": {"4"},
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/questions/search", query, nil, &resp); err != nil {
		return nil, err
	}

	c.log.DebugContext(ctx, "questions fetched",
		slog.Int("total", resp.Total),
		slog.Int("returned", len(resp.Questions)),
	)
	return resp.Questions, nil
}

// GetItem returns listing details for an item id.
func (c *Client) GetItem(ctx context.Context, itemID string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(itemID), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// PostAnswer publishes the seller's answer to a question.
func (c *Client) PostAnswer(ctx context.Context, questionID int64, text string) error {
	return c.do(ctx, http.MethodPost, "/answers", nil, answerRequest{QuestionID: questionID, Text: text}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("marketplace: rate limit wait: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var payload []byte
	if in != nil {
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marketplace: encode request: %w", err)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	newRequest := func() (*http.Request, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	// POST /answers is not idempotent: a lost response may hide an accepted
	// answer, so only GETs are retried.
	resp, err := c.doWithRetry(ctx, newRequest, path, method == http.MethodGet)
	if err != nil {
		c.log.ErrorContext(ctx, "marketplace request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("marketplace: %s %s: %v: %w", method, path, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("marketplace: decode %s: %w", path, err)
	}
	return nil
}

// doWithRetry executes the request, retrying once on 5xx or network errors
// when retryable is set.
func (c *Client) doWithRetry(ctx context.Context, newRequest func() (*http.Request, error), path string, retryable bool) (*http.Response, error) {
	req, err := newRequest()
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)

	shouldRetry := retryable && (err != nil || resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "marketplace retry", slog.String("path", path), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	req, err = newRequest()
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

// IsNotFound reports whether err is a 404 from the marketplace.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
