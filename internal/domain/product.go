package domain

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder titles used when the marketplace does not provide one.
const (
	UnknownProductTitle  = "Producto desconocido"
	UntitledProductTitle = "Producto sin título"
)

// Product is a marketplace listing known to the dashboard.
type Product struct {
	ID          uuid.UUID
	ExternalID  string
	Title       string
	Description string
	Attributes  ProductAttributes
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductAttributes holds listing metadata copied from the marketplace.
type ProductAttributes struct {
	Permalink         string  `json:"permalink,omitempty"`
	Price             float64 `json:"price,omitempty"`
	CurrencyID        string  `json:"currency_id,omitempty"`
	AvailableQuantity int     `json:"available_quantity,omitempty"`
	Thumbnail         string  `json:"thumbnail,omitempty"`
}

// ProductPatch describes a partial product edit. Nil fields are left unchanged.
type ProductPatch struct {
	Title       *string
	Description *string
	Attributes  *ProductAttributes
}

// Apply copies the set fields of the patch onto p.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Attributes != nil {
		p.Attributes = *patch.Attributes
	}
}
