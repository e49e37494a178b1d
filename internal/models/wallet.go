package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a row of the wallets table.
type Wallet struct {
	WalletID string          `db:"wallet_id"`
	OwnerID  string          `db:"owner_id"`
	Balance  decimal.Decimal `db:"balance"`
	Currency string          `db:"currency"`
	IsActive bool            `db:"is_active"`
	AuditFields
}

// LedgerEntry is a row of wallet_ledger_entries.
type LedgerEntry struct {
	EntryID              string          `db:"entry_id"`
	WalletID             string          `db:"wallet_id"`
	EntryType            string          `db:"entry_type"`
	Amount               decimal.Decimal `db:"amount"`
	BalanceBefore        decimal.Decimal `db:"balance_before"`
	BalanceAfter         decimal.Decimal `db:"balance_after"`
	Status               string          `db:"status"`
	RelatedAppointmentID *string         `db:"related_appointment_id"`
	Description          *string         `db:"description"`
	CreatedAt            time.Time       `db:"created_at"`
	CreatedBy            string          `db:"created_by"`
}

// WithdrawalRequest is a row of withdrawal_requests.
type WithdrawalRequest struct {
	RequestID       string          `db:"request_id"`
	WalletID        string          `db:"wallet_id"`
	Amount          decimal.Decimal `db:"amount"`
	BankBin         string          `db:"bank_bin"`
	AccountNumber   string          `db:"account_number"`
	AccountName     string          `db:"account_name"`
	Status          string          `db:"status"`
	LedgerEntryID   string          `db:"ledger_entry_id"`
	ReversalEntryID *string         `db:"reversal_entry_id"`
	ResolvedBy      *string         `db:"resolved_by"`
	ResolvedAt      *time.Time      `db:"resolved_at"`
	TransferRef     *string         `db:"transfer_ref"`
	Note            *string         `db:"note"`
	AuditFields
}

// PaymentOrder is a row of payment_orders.
type PaymentOrder struct {
	OrderID       string          `db:"order_id"`
	OrderCode     int64           `db:"order_code"`
	WalletID      string          `db:"wallet_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	CheckoutURL   string          `db:"checkout_url"`
	LedgerEntryID *string         `db:"ledger_entry_id"`
	CreatedAt     time.Time       `db:"created_at"`
	CompletedAt   *time.Time      `db:"completed_at"`
}

// Promotion is a row of promotions.
type Promotion struct {
	Code          string          `db:"code"`
	DiscountType  string          `db:"discount_type"`
	DiscountValue decimal.Decimal `db:"discount_value"`
	MaxUsage      *int            `db:"max_usage"`
	UsedCount     int             `db:"used_count"`
	StartsAt      time.Time       `db:"starts_at"`
	EndsAt        time.Time       `db:"ends_at"`
	IsActive      bool            `db:"is_active"`
}
