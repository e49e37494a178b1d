package mapping

import (
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/models"
)

// ToModelWithdrawal converts a domain WithdrawalRequest to its row
func ToModelWithdrawal(d domain.WithdrawalRequest) models.WithdrawalRequest {
	return models.WithdrawalRequest{
		RequestID:       d.RequestID,
		WalletID:        d.WalletID,
		Amount:          d.Amount,
		BankBin:         d.Destination.BankBin,
		AccountNumber:   d.Destination.AccountNumber,
		AccountName:     d.Destination.AccountName,
		Status:          string(d.Status),
		LedgerEntryID:   d.LedgerEntryID,
		ReversalEntryID: d.ReversalID,
		ResolvedBy:      d.ResolvedBy,
		ResolvedAt:      d.ResolvedAt,
		TransferRef:     d.TransferRef,
		Note:            optionalString(d.Note),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWithdrawal converts a withdrawal row to its domain form
func ToDomainWithdrawal(m models.WithdrawalRequest) domain.WithdrawalRequest {
	return domain.WithdrawalRequest{
		RequestID: m.RequestID,
		WalletID:  m.WalletID,
		Amount:    m.Amount,
		Destination: domain.BankAccount{
			BankBin:       m.BankBin,
			AccountNumber: m.AccountNumber,
			AccountName:   m.AccountName,
		},
		Status:        domain.WithdrawalStatus(m.Status),
		LedgerEntryID: m.LedgerEntryID,
		ReversalID:    m.ReversalEntryID,
		ResolvedBy:    m.ResolvedBy,
		ResolvedAt:    m.ResolvedAt,
		TransferRef:   m.TransferRef,
		Note:          derefString(m.Note),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPaymentOrder converts a domain PaymentOrder to its row
func ToModelPaymentOrder(d domain.PaymentOrder) models.PaymentOrder {
	return models.PaymentOrder{
		OrderID:       d.OrderID,
		OrderCode:     d.OrderCode,
		WalletID:      d.WalletID,
		Amount:        d.Amount,
		Status:        string(d.Status),
		CheckoutURL:   d.CheckoutURL,
		LedgerEntryID: d.LedgerEntryID,
		CreatedAt:     d.CreatedAt,
		CompletedAt:   d.CompletedAt,
	}
}

// ToDomainPaymentOrder converts a payment order row to its domain form
func ToDomainPaymentOrder(m models.PaymentOrder) domain.PaymentOrder {
	return domain.PaymentOrder{
		OrderID:       m.OrderID,
		OrderCode:     m.OrderCode,
		WalletID:      m.WalletID,
		Amount:        m.Amount,
		Status:        domain.PaymentOrderStatus(m.Status),
		CheckoutURL:   m.CheckoutURL,
		LedgerEntryID: m.LedgerEntryID,
		CreatedAt:     m.CreatedAt,
		CompletedAt:   m.CompletedAt,
	}
}

// ToDomainPromotion converts a promotion row to its domain form
func ToDomainPromotion(m models.Promotion) domain.Promotion {
	return domain.Promotion{
		Code:          m.Code,
		DiscountType:  domain.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		MaxUsage:      m.MaxUsage,
		UsedCount:     m.UsedCount,
		StartsAt:      m.StartsAt,
		EndsAt:        m.EndsAt,
		IsActive:      m.IsActive,
	}
}
