package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is how a promotion reduces the price.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Promotion is a discount code as reported by the promotion collaborator.
type Promotion struct {
	Code          string          `json:"code"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MaxUsage      *int            `json:"maxUsage,omitempty"`
	UsedCount     int             `json:"usedCount"`
	StartsAt      time.Time       `json:"startsAt"`
	EndsAt        time.Time       `json:"endsAt"`
	IsActive      bool            `json:"isActive"`
}

// UsableAt reports whether the code can be redeemed at now.
func (p Promotion) UsableAt(now time.Time) bool {
	if !p.IsActive || now.Before(p.StartsAt) || !now.Before(p.EndsAt) {
		return false
	}
	return p.MaxUsage == nil || p.UsedCount < *p.MaxUsage
}

// DiscountOn returns the discount for a pre-discount amount, capped at the
// amount itself and rounded to whole currency units.
func (p Promotion) DiscountOn(amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.DiscountType {
	case DiscountPercentage:
		discount = amount.Mul(p.DiscountValue).Div(decimal.NewFromInt(100)).Round(0)
	case DiscountFixed:
		discount = p.DiscountValue
	}
	if discount.GreaterThan(amount) {
		return amount
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}
