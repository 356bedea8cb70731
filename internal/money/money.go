// Package money formats amounts for display. It is display-only: subtotal
// arithmetic lives in pricing and never round-trips through here.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as pt-BR currency text, e.g. "R$ 1.234,56".
func FormatBRL(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	intPart, fracPart, _ := strings.Cut(d.StringFixed(2), ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
