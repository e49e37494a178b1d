package dto

import (
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest defines the data needed to request a payout.
type CreateWithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_gt0"`
	BankBin       string          `json:"bankBin" binding:"required,numeric,len=6"`
	AccountNumber string          `json:"accountNumber" binding:"required,numeric,min=6,max=20"`
	AccountName   string          `json:"accountName" binding:"required,max=100"`
}

// ResolveWithdrawalRequest carries an approver's note.
type ResolveWithdrawalRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// TransferResultRequest reports the bank transfer outcome for an approved request.
type TransferResultRequest struct {
	Success     *bool  `json:"success" binding:"required"`
	TransferRef string `json:"transferRef" binding:"max=100"`
	Note        string `json:"note" binding:"max=500"`
}

// WithdrawalResponse defines the data returned for a withdrawal request.
type WithdrawalResponse struct {
	RequestID     string                  `json:"requestID"`
	WalletID      string                  `json:"walletID"`
	Amount        decimal.Decimal         `json:"amount"`
	Destination   domain.BankAccount      `json:"destination"`
	Status        domain.WithdrawalStatus `json:"status"`
	LedgerEntryID string                  `json:"ledgerEntryID"`
	ResolvedBy    *string                 `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time              `json:"resolvedAt,omitempty"`
	TransferRef   *string                 `json:"transferRef,omitempty"`
	Note          string                  `json:"note,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// ToWithdrawalResponse converts a domain.WithdrawalRequest to WithdrawalResponse DTO
func ToWithdrawalResponse(w *domain.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		RequestID:     w.RequestID,
		WalletID:      w.WalletID,
		Amount:        w.Amount,
		Destination:   w.Destination,
		Status:        w.Status,
		LedgerEntryID: w.LedgerEntryID,
		ResolvedBy:    w.ResolvedBy,
		ResolvedAt:    w.ResolvedAt,
		TransferRef:   w.TransferRef,
		Note:          w.Note,
		CreatedAt:     w.CreatedAt,
	}
}
