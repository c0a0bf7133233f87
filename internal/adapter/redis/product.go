package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// ProductRepo stores products as hashes with an external-id lookup key.
type ProductRepo struct {
	client *goredis.Client
}

// NewProductRepo creates a new product repository.
func NewProductRepo(client *goredis.Client) *ProductRepo {
	return &ProductRepo{client: client}
}

// Create claims the external id and writes the product hash atomically.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	fields, err := productFields(p)
	if err != nil {
		return nil, err
	}

	claimed, err := claimRecord(ctx, r.client,
		productExternalKey(p.ExternalID), productPrefix, p.ID.String(), productKey(p.ID),
		fields, productsSetKey,
	)
	if err != nil {
		return nil, mapError(err, "product", p.ExternalID)
	}
	if !claimed {
		return nil, fmt.Errorf("product %s: %w", p.ExternalID, domain.ErrAlreadyExists)
	}

	created := *p
	return &created, nil
}

// Update overwrites title, description and attributes and bumps updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	existing, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = p.Title
	existing.Description = p.Description
	existing.Attributes = p.Attributes
	existing.UpdatedAt = time.Now().UTC()

	fields, err := productFields(existing)
	if err != nil {
		return nil, err
	}
	if err := r.client.HSet(ctx, productKey(p.ID), fields).Err(); err != nil {
		return nil, mapError(err, "product", p.ID)
	}
	return existing, nil
}

// GetByID returns a product by primary key.
func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m, err := r.client.HGetAll(ctx, productKey(id)).Result()
	if err != nil {
		return nil, mapError(err, "product", id)
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return parseProduct(m)
}

// GetByExternalID resolves the lookup key and returns the product.
func (r *ProductRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Product, error) {
	raw, err := r.client.Get(ctx, productExternalKey(externalID)).Result()
	if err != nil {
		return nil, mapError(err, "product", externalID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("product %s: corrupt lookup key: %w", externalID, err)
	}
	return r.GetByID(ctx, id)
}

// List returns all products, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	ids, err := r.client.SMembers(ctx, productsSetKey).Result()
	if err != nil {
		return nil, mapError(err, "product", "list")
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			keys = append(keys, productKey(id))
		}
	}

	hashes, err := loadHashes(ctx, r.client, keys)
	if err != nil {
		return nil, mapError(err, "product", "list")
	}

	out := make([]domain.Product, 0, len(hashes))
	for _, m := range hashes {
		if m == nil {
			continue
		}
		p, err := parseProduct(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func productFields(p *domain.Product) (map[string]any, error) {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes: %w", err)
	}
	return map[string]any{
		"id":          p.ID.String(),
		"external_id": p.ExternalID,
		"title":       p.Title,
		"description": p.Description,
		"attributes":  string(attrs),
		"created_at":  formatTime(p.CreatedAt),
		"updated_at":  formatTime(p.UpdatedAt),
	}, nil
}

func parseProduct(m map[string]string) (*domain.Product, error) {
	var (
		p   domain.Product
		err error
	)
	if p.ID, err = uuid.Parse(m["id"]); err != nil {
		return nil, fmt.Errorf("parse product id: %w", err)
	}
	p.ExternalID = m["external_id"]
	p.Title = m["title"]
	p.Description = m["description"]
	if raw := m["attributes"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	if p.CreatedAt, err = parseTime(m["created_at"]); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(m["updated_at"]); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}
