package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatMoney renders a whole-unit amount with thousands separators and the
// currency code, e.g. "1,250,000 VND". Used in ledger descriptions.
func FormatMoney(amount decimal.Decimal, currency string) string {
	raw := FormatWithPrecision(amount.Abs(), 0)
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if currency != "" {
		b.WriteByte(' ')
		b.WriteString(currency)
	}
	return b.String()
}
