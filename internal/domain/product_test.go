package domain

import "testing"

func TestProduct_Apply(t *testing.T) {
	t.Parallel()

	p := Product{
		Title:       "Taladro",
		Description: "original",
		Attributes:  ProductAttributes{Price: 10, CurrencyID: "ARS"},
	}
	title := "Taladro percutor"
	p.Apply(ProductPatch{Title: &title})

	if p.Title != title {
		t.Errorf("Title = %q, want %q", p.Title, title)
	}
	if p.Description != "original" {
		t.Errorf("Description changed to %q", p.Description)
	}
	if p.Attributes.Price != 10 {
		t.Errorf("Attributes changed: %+v", p.Attributes)
	}

	p.Apply(ProductPatch{Attributes: &ProductAttributes{Price: 25}})
	if p.Attributes.Price != 25 || p.Attributes.CurrencyID != "" {
		t.Errorf("Attributes not replaced: %+v", p.Attributes)
	}
}
