package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// ExternalQuestionID returns a random marketplace question id unlikely to collide.
func ExternalQuestionID() int64 {
	return rand.Int64N(1<<40) + 1
}

// SeedUser inserts a user with a placeholder password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:           uuid.New(),
		Name:         "Seller " + suffix,
		Email:        "seller-" + suffix + "@example.com",
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholderplace",
		Role:         domain.UserRoleUser,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}
	return user
}

// SeedProduct inserts a product with a unique external item id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool) domain.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.Product{
		ID:         uuid.New(),
		ExternalID: "MLA" + uniqueSuffix(),
		Title:      "Producto " + uniqueSuffix(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, external_id, title, description, attributes, created_at, updated_at)
		 VALUES ($1, $2, $3, '', '{}'::jsonb, $4, $5)`,
		p.ID, p.ExternalID, p.Title, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed product: %v", err)
	}
	return p
}

// SeedQuestion inserts an unanswered question for the given product.
func SeedQuestion(t *testing.T, pool *pgxpool.Pool, productID uuid.UUID) domain.Question {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	q := domain.Question{
		ID:         uuid.New(),
		ExternalID: ExternalQuestionID(),
		ProductID:  productID,
		Text:       "¿Tiene stock?",
		Status:     domain.QuestionStatusUnanswered,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO questions (id, external_id, product_id, text, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.ExternalID, q.ProductID, q.Text, string(q.Status), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed question: %v", err)
	}
	return q
}
