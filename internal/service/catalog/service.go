// Package catalog exposes the stored product listings for browsing and
// manual edits.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

type productRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
}

// Service implements product catalog operations.
type Service struct {
	log      *slog.Logger
	products productRepo
}

// NewService creates a new catalog service instance.
func NewService(logger *slog.Logger, products productRepo) *Service {
	return &Service{
		log:      logger.With("service", "catalog"),
		products: products,
	}
}

// List returns every stored product.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.List: %w", err)
	}
	return products, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.Get: %w", err)
	}
	return p, nil
}

// Update applies a partial edit to a product.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.Update: %w", err)
	}

	p.Apply(patch)
	updated, err := s.products.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("catalog.Update: %w", err)
	}

	s.log.InfoContext(ctx, "product updated",
		slog.String("product_id", id.String()),
		slog.String("external_id", updated.ExternalID),
	)
	return updated, nil
}

func validatePatch(patch domain.ProductPatch) error {
	var errs []domain.FieldError

	if patch.Title == nil && patch.Description == nil && patch.Attributes == nil {
		errs = append(errs, domain.FieldError{Field: "body", Message: "nothing to update"})
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		} else if utf8.RuneCountInString(*patch.Title) > 255 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
		}
	}
	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > 50000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long"})
	}
	if a := patch.Attributes; a != nil {
		if a.Price < 0 {
			errs = append(errs, domain.FieldError{Field: "attributes.price", Message: "must not be negative"})
		}
		if a.AvailableQuantity < 0 {
			errs = append(errs, domain.FieldError{Field: "attributes.available_quantity", Message: "must not be negative"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
