package products

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed seed.yaml
var seedYAML []byte

const seedStock = 10

// seedSizes is offered to every synced product.
var seedSizes = []string{"P", "M", "G", "GG"}

type seedRow struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Brand    string   `yaml:"brand"`
	Ref      string   `yaml:"ref"`
	Price    string   `yaml:"price"`
	OldPrice string   `yaml:"oldPrice"`
	Category Category `yaml:"category"`
	Gender   Gender   `yaml:"gender"`
	Image    string   `yaml:"image"`
	Images   []string `yaml:"images"`
	Stock    *int     `yaml:"stock"`
	IsNew    bool     `yaml:"isNew"`
	Colors   []string `yaml:"colors"`
}

// SeedList returns the embedded static catalog with sync defaults applied.
func SeedList() ([]Product, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes a YAML product list. Missing gender defaults to
// Masculino, missing stock to 10, missing images to the primary image, and
// sizes are always P, M, G and GG.
func ParseSeed(raw []byte) ([]Product, error) {
	var rows []seedRow
	if err := yaml.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse seed list: %w", err)
	}

	out := make([]Product, 0, len(rows))
	for i, r := range rows {
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("seed row %d: id and name are required", i)
		}
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("seed row %d (%s): price: %w", i, r.ID, err)
		}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("seed row %d (%s): unknown category %q", i, r.ID, r.Category)
		}

		p := Product{
			ID:       r.ID,
			Name:     r.Name,
			Brand:    r.Brand,
			Ref:      r.Ref,
			Price:    price,
			Category: r.Category,
			Gender:   r.Gender,
			Image:    r.Image,
			Images:   datatypes.JSONSlice[string](r.Images),
			Stock:    r.Stock,
			IsNew:    r.IsNew,
			Colors:   datatypes.JSONSlice[string](r.Colors),
			Sizes:    datatypes.JSONSlice[string](append([]string(nil), seedSizes...)),
		}
		if r.OldPrice != "" {
			old, err := decimal.NewFromString(r.OldPrice)
			if err != nil {
				return nil, fmt.Errorf("seed row %d (%s): oldPrice: %w", i, r.ID, err)
			}
			p.OldPrice = decimal.NewNullDecimal(old)
		}
		if p.Gender == "" {
			p.Gender = GenderMale
		}
		if len(p.Images) == 0 && p.Image != "" {
			p.Images = datatypes.JSONSlice[string]{p.Image}
		}
		if p.Stock == nil || *p.Stock == 0 {
			p.Stock = ptr(seedStock)
		}
		out = append(out, p)
	}
	return out, nil
}
