package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"urbantide.com/store/internal/modules/products"
)

const (
	sizeNotSelected = "(Não selecionado)"
	noCouponLine    = "Gostaria de saber mais sobre este modelo."
	securityLine    = "🔐 Protocolo de Segurança: UT-2026-VERIFIED"
)

// inquiry holds what goes into the detail page chat message.
type inquiry struct {
	Name          string
	Ref           string
	Size          string
	Price         decimal.Decimal
	CouponApplied bool
	CouponCode    string
	CouponPercent int64
}

func (q inquiry) message() string {
	size := q.Size
	if size == "" {
		size = sizeNotSelected
	}

	var b strings.Builder
	b.WriteString("Olá, Urban Tide!\n")
	b.WriteString("Tenho interesse no seguinte item:\n")
	fmt.Fprintf(&b, "🛒 *%s*\n", q.Name)
	fmt.Fprintf(&b, "🔢 REF: %s\n", q.Ref)
	fmt.Fprintf(&b, "📏 TAMANHO: %s\n", size)
	fmt.Fprintf(&b, "💰 VALOR: R$ %s\n", q.Price.StringFixed(2))
	b.WriteString("\n")
	if q.CouponApplied {
		fmt.Fprintf(&b, "🎟️ *CUPOM APLICADO: %s (%d%% OFF)*\n", q.CouponCode, q.CouponPercent)
		b.WriteString(securityLine)
	} else {
		b.WriteString(noCouponLine)
	}
	return b.String()
}

// CardMessage is the short inquiry sent from a catalog card.
func CardMessage(p products.Product) string {
	return fmt.Sprintf("Olá! Gostaria de saber mais sobre o produto: %s (REF: %s)", p.Name, p.Ref)
}
