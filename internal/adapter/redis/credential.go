package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// CredentialRepo stores the rotating marketplace refresh token under a
// single scalar key.
type CredentialRepo struct {
	client *goredis.Client
}

// NewCredentialRepo creates a new credential repository.
func NewCredentialRepo(client *goredis.Client) *CredentialRepo {
	return &CredentialRepo{client: client}
}

// GetRefreshToken returns the persisted refresh token or domain.ErrNotFound.
func (r *CredentialRepo) GetRefreshToken(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, refreshTokenKey).Result()
	if err != nil {
		return "", mapError(err, "marketplace_credential", refreshTokenKey)
	}
	return token, nil
}

// SaveRefreshToken overwrites the persisted refresh token.
func (r *CredentialRepo) SaveRefreshToken(ctx context.Context, token string) error {
	return mapError(r.client.Set(ctx, refreshTokenKey, token, 0).Err(), "marketplace_credential", refreshTokenKey)
}
