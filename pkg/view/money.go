package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a price the Brazilian way: "R$ 1.234,50".
func FormatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatNullBRL renders an optional price, empty when absent.
func FormatNullBRL(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return FormatBRL(d.Decimal)
}
