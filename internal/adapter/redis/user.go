package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// UserRepo stores users as hashes with an email lookup key.
type UserRepo struct {
	client *goredis.Client
}

// NewUserRepo creates a new user repository.
func NewUserRepo(client *goredis.Client) *UserRepo {
	return &UserRepo{client: client}
}

// Create claims the email and writes the user in one script, so concurrent
// registrations of the same address cannot both succeed.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	claimed, err := claimRecord(ctx, r.client,
		userEmailKey(u.Email), userPrefix, u.ID.String(), userKey(u.ID),
		map[string]any{
			"id":            u.ID.String(),
			"name":          u.Name,
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"role":          string(u.Role),
			"created_at":    formatTime(u.CreatedAt),
		},
	)
	if err != nil {
		return nil, mapError(err, "user", u.Email)
	}
	if !claimed {
		return nil, fmt.Errorf("user %s: %w", u.Email, domain.ErrAlreadyExists)
	}

	created := *u
	return &created, nil
}

// GetByID returns a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m, err := r.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, mapError(err, "user", id)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return parseUser(m)
}

// GetByEmail resolves the email lookup key and returns the user.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	raw, err := r.client.Get(ctx, userEmailKey(email)).Result()
	if err != nil {
		return nil, mapError(err, "user", email)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("user %s: corrupt lookup key: %w", email, err)
	}
	return r.GetByID(ctx, id)
}

func parseUser(m map[string]string) (*domain.User, error) {
	var (
		u   domain.User
		err error
	)
	if u.ID, err = uuid.Parse(m["id"]); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	u.Name = m["name"]
	u.Email = m["email"]
	u.PasswordHash = m["password_hash"]
	u.Role = domain.UserRole(m["role"])
	if u.CreatedAt, err = parseTime(m["created_at"]); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &u, nil
}
