package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Redbeardred/Oberyn-v0.2/internal/domain"
)

type catalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)
}

// ProductHandler serves the stored product catalog.
type ProductHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(svc catalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: logger.With("handler", "products")}
}

type productResponse struct {
	ID          string                   `json:"id"`
	ExternalID  string                   `json:"ml_item_id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Attributes  domain.ProductAttributes `json:"attributes"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

type productPatchRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Attributes  *domain.ProductAttributes `json:"attributes"`
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, "error listing products", err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, "error fetching product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// Update handles PATCH /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req productPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), id, domain.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Attributes:  req.Attributes,
	})
	if err != nil {
		handleError(h.log, w, r, "error updating product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, "invalid product id", domain.NewValidationError("id", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID.String(),
		ExternalID:  p.ExternalID,
		Title:       p.Title,
		Description: p.Description,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
