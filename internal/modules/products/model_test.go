package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestSizeAvailableFallsBackToAllSizes(t *testing.T) {
	var p Product
	for _, s := range StandardSizes {
		assert.True(t, p.SizeAvailable(s.Size), s.Size)
	}
	assert.False(t, p.SizeAvailable("XXL"))

	p.Sizes = datatypes.JSONSlice[string]{"M", "G"}
	var available []string
	for _, s := range StandardSizes {
		if p.SizeAvailable(s.Size) {
			available = append(available, s.Size)
		}
	}
	assert.Equal(t, []string{"M", "G"}, available)
}

func TestDiscountPercent(t *testing.T) {
	p := Product{Price: decimal.RequireFromString("149.90")}
	assert.Zero(t, p.DiscountPercent())

	p.OldPrice = decimal.NewNullDecimal(decimal.RequireFromString("189.90"))
	assert.EqualValues(t, 21, p.DiscountPercent())

	p.OldPrice = decimal.NewNullDecimal(decimal.RequireFromString("100"))
	assert.Zero(t, p.DiscountPercent())
}

func TestInStockAndGallery(t *testing.T) {
	p := Product{Image: "/main.jpg"}
	assert.False(t, p.InStock())
	assert.Equal(t, []string{"/main.jpg"}, p.Gallery())

	zero := 0
	p.Stock = &zero
	assert.False(t, p.InStock())

	five := 5
	p.Stock = &five
	p.Images = datatypes.JSONSlice[string]{"/a.jpg", "/b.jpg"}
	assert.True(t, p.InStock())
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, p.Gallery())
}

func TestCategoryAndGenderValid(t *testing.T) {
	assert.True(t, CategoryKits.Valid())
	assert.False(t, Category("Todos").Valid())
	assert.True(t, GenderUnisex.Valid())
	assert.False(t, Gender("Outro").Valid())
}
