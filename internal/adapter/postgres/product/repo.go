// Package product implements the Product repository using PostgreSQL.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Redbeardred/Oberyn-v0.2/internal/adapter/postgres"
	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

const table = "products"

var columns = []string{"id", "external_id", "title", "description", "attributes", "created_at", "updated_at"}

// Repo provides product persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new product repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a product. A duplicate external id yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}

	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(p.ID, p.ExternalID, p.Title, p.Description, attrs, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.one(ctx, q, p.ExternalID)
}

// Update overwrites title, description and attributes and bumps updated_at.
func (r *Repo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}

	q := postgres.Builder().
		Update(table).
		Set("title", p.Title).
		Set("description", p.Description).
		Set("attributes", attrs).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.one(ctx, q, p.ID)
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a product by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"id": id})
	return r.one(ctx, q, id)
}

// GetByExternalID returns a product by marketplace item id.
func (r *Repo) GetByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	q := postgres.Builder().Select(columns...).From(table).Where(squirrel.Eq{"external_id": externalID})
	return r.one(ctx, q, externalID)
}

// List returns all products, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	q := postgres.Builder().Select(columns...).From(table).OrderBy("created_at DESC", "id")

	rows, err := postgres.Query(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return nil, postgres.MapError(err, "product", "list")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, postgres.MapError(err, "product", "list")
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "product", "list")
	}
	return out, nil
}

func (r *Repo) one(ctx context.Context, q squirrel.Sqlizer, key any) (*domain.Product, error) {
	row, err := postgres.QueryRow(ctx, postgres.QuerierFromCtx(ctx, r.pool), q)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(row)
	if err != nil {
		return nil, postgres.MapError(err, "product", key)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		attrs []byte
	)
	if err := row.Scan(&p.ID, &p.ExternalID, &p.Title, &p.Description, &attrs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	return &p, nil
}
