package products

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryPolo       Category = "Camisas Polo"
	CategoryBasic      Category = "Básicas & Estampadas"
	CategoryPremium    Category = "Linha Premium"
	CategoryKits       Category = "Kits Promocionais"
	CategoryDresses    Category = "Vestidos & Saias"
	CategoryTops       Category = "Blusas & Tops"
	CategoryWomenPants Category = "Calças & Shorts Femininos"
	CategoryAccessory  Category = "Acessórios"
)

// Categories lists the merchandising groups in display order.
var Categories = []Category{
	CategoryPolo,
	CategoryBasic,
	CategoryPremium,
	CategoryKits,
	CategoryDresses,
	CategoryTops,
	CategoryWomenPants,
	CategoryAccessory,
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Feminino"
	GenderUnisex Gender = "Unissex"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderUnisex}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnisex
}

// Product is one row of the products table. Images, colors and sizes are
// JSON columns; an empty Sizes list means every standard size is on offer.
type Product struct {
	ID       string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name     string                      `gorm:"size:255;not null" json:"name"`
	Brand    string                      `gorm:"size:120;not null" json:"brand"`
	Ref      string                      `gorm:"size:64;not null" json:"ref"`
	Price    decimal.Decimal             `gorm:"type:decimal(10,2);not null" json:"price"`
	OldPrice decimal.NullDecimal         `gorm:"type:decimal(10,2)" json:"oldPrice"`
	Category Category                    `gorm:"size:64;not null;index" json:"category"`
	Gender   Gender                      `gorm:"size:32;not null" json:"gender"`
	Image    string                      `gorm:"type:text" json:"image"`
	Images   datatypes.JSONSlice[string] `json:"images"`
	Stock    *int                        `json:"stock,omitempty"`
	IsNew    bool                        `gorm:"column:is_new;not null;default:false" json:"isNew"`
	Colors   datatypes.JSONSlice[string] `json:"colors,omitempty"`
	Sizes    datatypes.JSONSlice[string] `json:"sizes,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// InStock reports a positive stock count; absent stock means unavailable.
func (p Product) InStock() bool { return p.Stock != nil && *p.Stock > 0 }

// Gallery returns the ordered images, falling back to the primary image.
func (p Product) Gallery() []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// DiscountPercent is the struck-through discount rounded to whole percent,
// zero when there is no old price above the current one.
func (p Product) DiscountPercent() int64 {
	if !p.OldPrice.Valid || !p.OldPrice.Decimal.GreaterThan(p.Price) {
		return 0
	}
	old := p.OldPrice.Decimal
	return old.Sub(p.Price).Div(old).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
