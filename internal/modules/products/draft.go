package products

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"urbantide.com/store/internal/shared/apperr"
)

// Draft is the in-progress admin edit form. Any field may still be missing;
// Validate decides whether it can become a Product.
type Draft struct {
	ID       string           `json:"id,omitempty"`
	Name     *string          `json:"name,omitempty"`
	Brand    *string          `json:"brand,omitempty"`
	Ref      *string          `json:"ref,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	OldPrice *decimal.Decimal `json:"oldPrice,omitempty"`
	Category *Category        `json:"category,omitempty"`
	Gender   *Gender          `json:"gender,omitempty"`
	Image    string           `json:"image,omitempty"`
	Images   []string         `json:"images,omitempty"`
	Stock    *int             `json:"stock,omitempty"`
	IsNew    bool             `json:"isNew,omitempty"`
	Colors   []string         `json:"colors,omitempty"`
	Sizes    []string         `json:"sizes,omitempty"`
}

// DraftFromProduct opens an existing row for editing.
func DraftFromProduct(p Product) Draft {
	d := Draft{
		ID:       p.ID,
		Name:     ptr(p.Name),
		Brand:    ptr(p.Brand),
		Ref:      ptr(p.Ref),
		Price:    ptr(p.Price),
		Category: ptr(p.Category),
		Gender:   ptr(p.Gender),
		Image:    p.Image,
		Images:   append([]string(nil), p.Images...),
		IsNew:    p.IsNew,
		Colors:   append([]string(nil), p.Colors...),
		Sizes:    append([]string(nil), p.Sizes...),
	}
	if p.OldPrice.Valid {
		d.OldPrice = ptr(p.OldPrice.Decimal)
	}
	if p.Stock != nil {
		d.Stock = ptr(*p.Stock)
	}
	return d
}

// Validate checks the required form fields and reports them per field.
func (d Draft) Validate() error {
	fields := map[string]string{}
	required := "Campo obrigatório."

	if blank(d.Name) {
		fields["name"] = required
	}
	if blank(d.Ref) {
		fields["ref"] = required
	}
	if blank(d.Brand) {
		fields["brand"] = required
	}
	switch {
	case d.Price == nil:
		fields["price"] = required
	case !d.Price.IsPositive():
		fields["price"] = "O preço deve ser maior que zero."
	}
	if d.OldPrice != nil && d.OldPrice.IsNegative() {
		fields["oldPrice"] = "Valor inválido."
	}
	switch {
	case d.Category == nil:
		fields["category"] = required
	case !d.Category.Valid():
		fields["category"] = "Categoria inválida."
	}
	switch {
	case d.Gender == nil:
		fields["gender"] = required
	case !d.Gender.Valid():
		fields["gender"] = "Gênero inválido."
	}
	switch {
	case d.Stock == nil:
		fields["stock"] = required
	case *d.Stock < 0:
		fields["stock"] = "O estoque não pode ser negativo."
	}
	for _, s := range d.Sizes {
		if _, ok := LookupSize(s); !ok {
			fields["sizes"] = "Tamanho inválido: " + s
			break
		}
	}

	if len(fields) > 0 {
		return apperr.InvalidErr("Preencha os campos obrigatórios.", fields)
	}
	return nil
}

// Product materializes a validated draft. A draft without id gets a new one.
func (d Draft) Product(now time.Time) (Product, error) {
	if err := d.Validate(); err != nil {
		return Product{}, err
	}
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	p := Product{
		ID:        id,
		Name:      strings.TrimSpace(*d.Name),
		Brand:     strings.TrimSpace(*d.Brand),
		Ref:       strings.TrimSpace(*d.Ref),
		Price:     d.Price.Round(2),
		Category:  *d.Category,
		Gender:    *d.Gender,
		Image:     d.Image,
		Images:    datatypes.JSONSlice[string](append([]string(nil), d.Images...)),
		Stock:     ptr(*d.Stock),
		IsNew:     d.IsNew,
		Colors:    datatypes.JSONSlice[string](append([]string(nil), d.Colors...)),
		Sizes:     datatypes.JSONSlice[string](append([]string(nil), d.Sizes...)),
		UpdatedAt: now,
	}
	if d.OldPrice != nil && !d.OldPrice.IsZero() {
		p.OldPrice = decimal.NewNullDecimal(d.OldPrice.Round(2))
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	return p, nil
}

// AddImages appends uploaded URLs. The first one becomes the primary image
// only when no primary is set yet.
func (d *Draft) AddImages(urls ...string) {
	if len(urls) == 0 {
		return
	}
	d.seedGallery()
	if d.Image == "" {
		d.Image = urls[0]
	}
	d.Images = append(d.Images, urls...)
}

// ImageIndex finds url in the gallery, or -1. A legacy row with only a
// primary image gets that image as its one-entry gallery first.
func (d *Draft) ImageIndex(url string) int {
	d.seedGallery()
	return slices.Index(d.Images, url)
}

func (d *Draft) seedGallery() {
	if len(d.Images) == 0 && d.Image != "" {
		d.Images = []string{d.Image}
	}
}

// RemoveImage drops the image at idx; removing the primary promotes the
// first remaining image.
func (d *Draft) RemoveImage(idx int) bool {
	if idx < 0 || idx >= len(d.Images) {
		return false
	}
	removed := d.Images[idx]
	d.Images = append(d.Images[:idx:idx], d.Images[idx+1:]...)
	if d.Image == removed {
		d.Image = ""
		if len(d.Images) > 0 {
			d.Image = d.Images[0]
		}
	}
	return true
}

// SetPrimary marks one of the draft images as the primary image.
func (d *Draft) SetPrimary(url string) bool {
	for _, im := range d.Images {
		if im == url {
			d.Image = url
			return true
		}
	}
	return false
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func ptr[T any](v T) *T { return &v }
