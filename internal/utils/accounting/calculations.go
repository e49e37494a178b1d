package accounting

import (
	"fmt"
	"strings"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyEntry computes the balance after posting amount of the given entry type
// onto balance. Credits add, debits subtract. It does not reject negative
// results; callers decide what an overdraft means.
func ApplyEntry(balance decimal.Decimal, entryType domain.EntryType, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("ledger amount must be positive, got %s", amount)
	}
	dir, err := entryType.Direction()
	if err != nil {
		return decimal.Zero, err
	}
	if dir == domain.Debit {
		return balance.Sub(amount), nil
	}
	return balance.Add(amount), nil
}

// RefundAmount returns round(total × percentage / 100) in whole currency units.
// Percentages are clamped to [0, 100].
func RefundAmount(total decimal.Decimal, percentage decimal.Decimal) decimal.Decimal {
	if percentage.IsNegative() {
		percentage = decimal.Zero
	}
	if percentage.GreaterThan(hundred) {
		percentage = hundred
	}
	return total.Mul(percentage).Div(hundred).Round(0)
}

// ParsePercentage reads a configured percentage such as "80" or "87.5".
func ParsePercentage(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid percentage %q: %w", raw, err)
	}
	if value.IsNegative() || value.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("percentage %q out of range [0, 100]", raw)
	}
	return value, nil
}
