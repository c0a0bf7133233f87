// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const table = "users"

var columns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new user. A taken email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return nil, err
	}

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.Email)
	}
	return created, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by normalised email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email}, email)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, key any) (*domain.User, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(where)

	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return nil, err
	}

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", key)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
