package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus is the lifecycle of a payout request.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "PENDING"
	WithdrawalApproved  WithdrawalStatus = "APPROVED"
	WithdrawalRejected  WithdrawalStatus = "REJECTED"
	WithdrawalCompleted WithdrawalStatus = "COMPLETED"
)

// WithdrawalDecision is an approver's verdict on a pending request.
type WithdrawalDecision string

const (
	DecisionApprove WithdrawalDecision = "APPROVE"
	DecisionReject  WithdrawalDecision = "REJECT"
)

// BankAccount is the payout destination.
type BankAccount struct {
	BankBin       string `json:"bankBin"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// WithdrawalRequest earmarks funds through exactly one pending debit entry
// until it is resolved.
type WithdrawalRequest struct {
	RequestID     string           `json:"requestID"`
	WalletID      string           `json:"walletID"`
	Amount        decimal.Decimal  `json:"amount"`
	Destination   BankAccount      `json:"destination"`
	Status        WithdrawalStatus `json:"status"`
	LedgerEntryID string           `json:"ledgerEntryID"`
	ReversalID    *string          `json:"reversalEntryID,omitempty"`
	ResolvedBy    *string          `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time       `json:"resolvedAt,omitempty"`
	TransferRef   *string          `json:"transferRef,omitempty"`
	Note          string           `json:"note,omitempty"`
	AuditFields
}
