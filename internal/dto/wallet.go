package dto

import (
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID string          `json:"walletID"`
	OwnerID  string          `json:"ownerID"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	IsActive bool            `json:"isActive"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID              string                   `json:"entryID"`
	Type                 domain.EntryType         `json:"type"`
	Direction            domain.Direction         `json:"direction"`
	Amount               decimal.Decimal          `json:"amount"`
	BalanceBefore        decimal.Decimal          `json:"balanceBefore"`
	BalanceAfter         decimal.Decimal          `json:"balanceAfter"`
	Status               domain.LedgerEntryStatus `json:"status"`
	RelatedAppointmentID *string                  `json:"relatedAppointmentID,omitempty"`
	Description          string                   `json:"description,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
}

// ListLedgerEntriesParams defines parameters for listing ledger entries.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse wraps a page of entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// CreateTopUpRequest asks for a gateway checkout to fund the wallet.
type CreateTopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimal_gt0"`
}

// TopUpResponse carries the checkout link for a created order.
type TopUpResponse struct {
	OrderCode   int64                     `json:"orderCode"`
	Amount      decimal.Decimal           `json:"amount"`
	Status      domain.PaymentOrderStatus `json:"status"`
	CheckoutURL string                    `json:"checkoutURL"`
}

// PaymentCallbackRequest is the gateway's webhook body.
type PaymentCallbackRequest struct {
	Code      string              `json:"code"`
	Desc      string              `json:"desc"`
	Success   bool                `json:"success"`
	Data      PaymentCallbackData `json:"data" binding:"required"`
	Signature string              `json:"signature" binding:"required"`
}

// PaymentCallbackData is the signed part of the webhook body.
type PaymentCallbackData struct {
	OrderCode     int64  `json:"orderCode" binding:"required"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	Reference     string `json:"reference"`
	Code          string `json:"code"`
	TransactionAt string `json:"transactionDateTime"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID: w.WalletID,
		OwnerID:  w.OwnerID,
		Balance:  w.Balance,
		Currency: w.Currency,
		IsActive: w.IsActive,
	}
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	dir, _ := e.Type.Direction()
	return LedgerEntryResponse{
		EntryID:              e.EntryID,
		Type:                 e.Type,
		Direction:            dir,
		Amount:               e.Amount,
		BalanceBefore:        e.BalanceBefore,
		BalanceAfter:         e.BalanceAfter,
		Status:               e.Status,
		RelatedAppointmentID: e.RelatedAppointmentID,
		Description:          e.Description,
		CreatedAt:            e.CreatedAt,
	}
}

// ToListLedgerEntriesResponse converts a page of entries
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListLedgerEntriesResponse {
	list := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		list[i] = ToLedgerEntryResponse(e)
	}
	return ListLedgerEntriesResponse{Entries: list, NextToken: nextToken}
}

// ToTopUpResponse converts a payment order to TopUpResponse DTO
func ToTopUpResponse(o *domain.PaymentOrder) TopUpResponse {
	return TopUpResponse{
		OrderCode:   o.OrderCode,
		Amount:      o.Amount,
		Status:      o.Status,
		CheckoutURL: o.CheckoutURL,
	}
}
