package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentOrderStatus tracks a wallet top-up through the external gateway.
type PaymentOrderStatus string

const (
	OrderPending   PaymentOrderStatus = "PENDING"
	OrderSucceeded PaymentOrderStatus = "SUCCEEDED"
	OrderFailed    PaymentOrderStatus = "FAILED"
)

// PaymentOrder is a top-up awaiting the gateway callback.
type PaymentOrder struct {
	OrderID       string             `json:"orderID"`
	OrderCode     int64              `json:"orderCode"`
	WalletID      string             `json:"walletID"`
	Amount        decimal.Decimal    `json:"amount"`
	Status        PaymentOrderStatus `json:"status"`
	CheckoutURL   string             `json:"checkoutURL"`
	LedgerEntryID *string            `json:"ledgerEntryID,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
}
