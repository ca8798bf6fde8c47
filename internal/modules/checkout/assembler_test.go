package checkout

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/products"
)

const testPhone = "5511991583540"

func polo() products.Product {
	stock := 7
	return products.Product{
		ID:    "p1",
		Name:  "Polo Navy",
		Ref:   "FT-001",
		Price: decimal.RequireFromString("100.00"),
		Sizes: datatypes.JSONSlice[string]{"M", "G"},
		Stock: &stock,
	}
}

func newAssembler() *Assembler {
	return NewAssembler(testPhone, coupon.New("URBAN20", 20))
}

func TestAssembleWithoutCoupon(t *testing.T) {
	d := newAssembler().Assemble(polo(), UIState{Size: "M"})

	assert.True(t, d.EffectivePrice.Equal(decimal.RequireFromString("100")))
	assert.False(t, d.CompareAt.Valid)
	assert.Contains(t, d.Message, "FT-001")
	assert.Contains(t, d.Message, "📏 TAMANHO: M")
	assert.Contains(t, d.Message, "💰 VALOR: R$ 100.00")
	assert.NotContains(t, d.Message, "CUPOM")
	assert.True(t, strings.HasSuffix(d.Message, noCouponLine))
	assert.Equal(t, "7 peças disponíveis", d.StockLabel)
}

func TestAssembleWithCoupon(t *testing.T) {
	d := newAssembler().Assemble(polo(), UIState{Size: "M", CouponApplied: true})

	assert.Equal(t, "80.00", d.EffectivePrice.StringFixed(2))
	require.True(t, d.CompareAt.Valid)
	assert.Equal(t, "100.00", d.CompareAt.Decimal.StringFixed(2))
	assert.EqualValues(t, 20, d.CouponPercent)
	assert.Contains(t, d.Message, "💰 VALOR: R$ 80.00")
	assert.Contains(t, d.Message, "🎟️ *CUPOM APLICADO: URBAN20 (20% OFF)*")
	assert.Contains(t, d.Message, securityLine)
}

func TestAssembleKeepsOldPriceAsCompareAt(t *testing.T) {
	p := polo()
	p.OldPrice = decimal.NewNullDecimal(decimal.RequireFromString("129.90"))

	d := newAssembler().Assemble(p, UIState{CouponApplied: true})
	assert.Equal(t, "129.90", d.CompareAt.Decimal.StringFixed(2))
}

func TestAssembleDropsUnavailableSize(t *testing.T) {
	d := newAssembler().Assemble(polo(), UIState{Size: "XG"})

	assert.Empty(t, d.SelectedSize)
	assert.Contains(t, d.Message, "📏 TAMANHO: (Não selecionado)")

	require.Len(t, d.Sizes, len(products.StandardSizes))
	var available []string
	for _, s := range d.Sizes {
		if s.Available {
			available = append(available, s.Size)
		} else {
			assert.Equal(t, "Indisponível", s.Label)
		}
		assert.False(t, s.Selected)
	}
	assert.Equal(t, []string{"M", "G"}, available)
}

func TestAssembleOutOfStock(t *testing.T) {
	p := polo()
	p.Stock = nil
	d := newAssembler().Assemble(p, UIState{})
	assert.False(t, d.InStock)
	assert.Equal(t, "Produto Indisponível", d.StockLabel)
}

func TestSelectSize(t *testing.T) {
	size, err := SelectSize(polo(), "G")
	require.NoError(t, err)
	assert.Equal(t, "G", size)

	_, err = SelectSize(polo(), "P")
	var sue *SizeUnavailableError
	require.True(t, errors.As(err, &sue))
	assert.Equal(t, []string{"M", "G"}, sue.Available)

	size, err = SelectSize(polo(), "")
	require.NoError(t, err)
	assert.Empty(t, size)
}

func TestChatURLRoundTripsMessage(t *testing.T) {
	d := newAssembler().Assemble(polo(), UIState{Size: "G", CouponApplied: true})

	u, err := url.Parse(d.ChatURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/"+testPhone, u.Path)
	assert.Equal(t, d.Message, u.Query().Get("text"))
	assert.NotContains(t, u.RawQuery, "+")
}

func TestCardAndContactLinks(t *testing.T) {
	a := newAssembler()
	assert.Equal(t, "https://wa.me/"+testPhone, a.ContactLink())

	u, err := url.Parse(a.CardLink(polo()))
	require.NoError(t, err)
	assert.Equal(t, "Olá! Gostaria de saber mais sobre o produto: Polo Navy (REF: FT-001)", u.Query().Get("text"))
}
