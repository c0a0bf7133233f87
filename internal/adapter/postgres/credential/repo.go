// Package credential persists the rotating marketplace refresh token.
package credential

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
)

const table = "marketplace_credentials"

// Repo stores a single refresh-token row.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new credential repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetRefreshToken returns the last persisted refresh token or domain.ErrNotFound.
func (r *Repo) GetRefreshToken(ctx context.Context) (string, error) {
	b := postgres.Builder().Select("refresh_token").From(table).Where(squirrel.Eq{"id": 1})

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), b)
	if err != nil {
		return "", err
	}

	var token string
	if err := row.Scan(&token); err != nil {
		return "", postgres.MapError(err, "marketplace_credential", 1)
	}
	return token, nil
}

// SaveRefreshToken upserts the refresh token.
func (r *Repo) SaveRefreshToken(ctx context.Context, token string) error {
	b := postgres.Builder().
		Insert(table).
		Columns("id", "refresh_token", "updated_at").
		Values(1, token, time.Now().UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET refresh_token = EXCLUDED.refresh_token, updated_at = EXCLUDED.updated_at")

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), b); err != nil {
		return postgres.MapError(err, "marketplace_credential", 1)
	}
	return nil
}
