package view

import (
	"fmt"

	"urbantide.com/store/internal/modules/checkout"
	"urbantide.com/store/internal/modules/products"
)

// ProductCard is one tile of the catalog grid.
type ProductCard struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	Ref        string `json:"ref"`
	Category   string `json:"category"`
	Image      string `json:"image"`
	Price      string `json:"price"`
	OldPrice   string `json:"oldPrice,omitempty"`
	Discount   string `json:"discount,omitempty"`
	IsNew      bool   `json:"isNew"`
	InStock    bool   `json:"inStock"`
	InquiryURL string `json:"inquiryUrl"`
}

func NewProductCard(p products.Product, inquiryURL string) ProductCard {
	c := ProductCard{
		ID:         p.ID,
		Name:       p.Name,
		Brand:      p.Brand,
		Ref:        p.Ref,
		Category:   string(p.Category),
		Image:      p.Image,
		Price:      FormatBRL(p.Price),
		OldPrice:   FormatNullBRL(p.OldPrice),
		IsNew:      p.IsNew,
		InStock:    p.InStock(),
		InquiryURL: inquiryURL,
	}
	if pct := p.DiscountPercent(); pct > 0 {
		c.Discount = fmt.Sprintf("-%d%% OFF", pct)
	}
	return c
}

// ProductDetailPage is the assembled product page with display strings.
type ProductDetailPage struct {
	checkout.Detail
	Gallery        []string `json:"gallery"`
	PriceLabel     string   `json:"priceLabel"`
	CompareAtLabel string   `json:"compareAtLabel,omitempty"`
	CouponCode     string   `json:"couponCode,omitempty"`
	CouponError    string   `json:"couponError,omitempty"`
	CatalogURL     string   `json:"catalogUrl"`
	CategoryURL    string   `json:"categoryUrl"`
}

func NewProductDetailPage(d checkout.Detail) ProductDetailPage {
	return ProductDetailPage{
		Detail:         d,
		Gallery:        d.Product.Gallery(),
		PriceLabel:     FormatBRL(d.EffectivePrice),
		CompareAtLabel: FormatNullBRL(d.CompareAt),
		CatalogURL:     "/catalog",
		CategoryURL:    CatalogURL(string(d.Product.Category)),
	}
}
