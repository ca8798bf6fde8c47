package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/products"
)

// UIState is the transient detail-page state sent by the browser.
type UIState struct {
	Size          string
	CouponApplied bool
}

type SizeOption struct {
	products.SizeDimension
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
	Label     string `json:"label"`
}

// Detail is the display model of one product page.
type Detail struct {
	Product        products.Product    `json:"product"`
	BasePrice      decimal.Decimal     `json:"basePrice"`
	EffectivePrice decimal.Decimal     `json:"effectivePrice"`
	CompareAt      decimal.NullDecimal `json:"compareAt"`
	CouponApplied  bool                `json:"couponApplied"`
	CouponPercent  int64               `json:"couponPercent"`
	SelectedSize   string              `json:"selectedSize"`
	Sizes          []SizeOption        `json:"sizes"`
	InStock        bool                `json:"inStock"`
	StockLabel     string              `json:"stockLabel"`
	Message        string              `json:"message"`
	ChatURL        string              `json:"chatUrl"`
}

type Assembler struct {
	phone  string
	coupon *coupon.Evaluator
}

func NewAssembler(phone string, ev *coupon.Evaluator) *Assembler {
	return &Assembler{phone: phone, coupon: ev}
}

func (a *Assembler) Phone() string { return a.phone }

// ContactLink opens the chat without a prefilled message.
func (a *Assembler) ContactLink() string { return ChatLink(a.phone, "") }

// CardLink is the inquiry link of a catalog card.
func (a *Assembler) CardLink(p products.Product) string {
	return ChatLink(a.phone, CardMessage(p))
}

// SelectSize validates a size pick. Unknown or unavailable sizes cannot be
// selected; an empty pick is allowed and means "not selected".
func SelectSize(p products.Product, size string) (string, error) {
	if size == "" || p.SizeAvailable(size) {
		return size, nil
	}
	return "", &SizeUnavailableError{Size: size, Available: availableSizes(p)}
}

// Assemble builds the detail model. A size that cannot be selected is
// dropped, so the message then reads "not selected".
func (a *Assembler) Assemble(p products.Product, st UIState) Detail {
	selected, err := SelectSize(p, st.Size)
	if err != nil {
		selected = ""
	}

	d := Detail{
		Product:        p,
		BasePrice:      p.Price,
		EffectivePrice: a.coupon.Price(p.Price, st.CouponApplied),
		CouponApplied:  st.CouponApplied,
		SelectedSize:   selected,
		InStock:        p.InStock(),
	}
	if st.CouponApplied {
		d.CouponPercent = a.coupon.Percent()
	}

	switch {
	case p.OldPrice.Valid:
		d.CompareAt = p.OldPrice
	case st.CouponApplied:
		d.CompareAt = decimal.NewNullDecimal(p.Price)
	}

	if d.InStock {
		d.StockLabel = fmt.Sprintf("%d peças disponíveis", *p.Stock)
	} else {
		d.StockLabel = "Produto Indisponível"
	}

	for _, s := range products.StandardSizes {
		opt := SizeOption{
			SizeDimension: s,
			Available:     p.SizeAvailable(s.Size),
			Selected:      s.Size == selected,
		}
		if opt.Available {
			opt.Label = s.Width + " x " + s.Height
		} else {
			opt.Label = "Indisponível"
		}
		d.Sizes = append(d.Sizes, opt)
	}

	d.Message = inquiry{
		Name:          p.Name,
		Ref:           p.Ref,
		Size:          selected,
		Price:         d.EffectivePrice,
		CouponApplied: st.CouponApplied,
		CouponCode:    a.coupon.Code(),
		CouponPercent: a.coupon.Percent(),
	}.message()
	d.ChatURL = ChatLink(a.phone, d.Message)
	return d
}

func availableSizes(p products.Product) []string {
	var out []string
	for _, s := range products.StandardSizes {
		if p.SizeAvailable(s.Size) {
			out = append(out, s.Size)
		}
	}
	return out
}
