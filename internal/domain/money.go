package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is prefixed to every displayed amount
const CurrencySymbol = "₹"

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount for display, e.g. ₹1,234.50. Values are
// rounded to two decimals.
func FormatMoney(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.Truncate(0)
	frac := rounded.Sub(whole).StringFixed(2)
	frac = frac[strings.IndexByte(frac, '.'):]

	var b strings.Builder
	b.WriteString(CurrencySymbol)
	b.WriteString(sign)
	b.WriteString(formatWhole(whole))
	b.WriteString(frac)
	return b.String()
}

// formatWhole groups the digits of a non-negative integral amount. Amounts
// beyond int64 are grouped by hand since IntPart would wrap.
func formatWhole(whole decimal.Decimal) string {
	n := whole.BigInt()
	if n.IsInt64() {
		return moneyPrinter.Sprintf("%d", n.Int64())
	}
	digits := n.String()
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ProgressPercent returns part as a whole-number percentage of total,
// clamped to [0, 100]. A non-positive total yields 0.
func ProgressPercent(part, total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	pct := part.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}
