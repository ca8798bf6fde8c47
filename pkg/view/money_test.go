package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"urbantide.com/store/internal/modules/products"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"80":        "R$ 80,00",
		"149.9":     "R$ 149,90",
		"1234.5":    "R$ 1.234,50",
		"1234567.8": "R$ 1.234.567,80",
		"0":         "R$ 0,00",
		"-12.5":     "-R$ 12,50",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), in)
	}
	assert.Empty(t, FormatNullBRL(decimal.NullDecimal{}))
}

func TestNewProductCardDiscountBadge(t *testing.T) {
	p := products.Product{
		ID:       "p1",
		Name:     "Polo Navy",
		Price:    decimal.RequireFromString("149.90"),
		OldPrice: decimal.NewNullDecimal(decimal.RequireFromString("189.90")),
	}
	c := NewProductCard(p, "https://wa.me/1")
	assert.Equal(t, "-21% OFF", c.Discount)
	assert.Equal(t, "R$ 189,90", c.OldPrice)
	assert.False(t, c.InStock)

	p.OldPrice = decimal.NullDecimal{}
	assert.Empty(t, NewProductCard(p, "").Discount)
}

func TestCatalogURL(t *testing.T) {
	assert.Equal(t, "/catalog", CatalogURL(""))
	assert.Equal(t, "/catalog?category=B%C3%A1sicas+%26+Estampadas", CatalogURL("Básicas & Estampadas"))
}
