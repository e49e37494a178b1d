package mapping

import (
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:    d.WalletID,
		OwnerID:     d.OwnerID,
		Balance:     d.Balance,
		Currency:    d.Currency,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:    m.WalletID,
		OwnerID:     m.OwnerID,
		Balance:     m.Balance,
		Currency:    m.Currency,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:              d.EntryID,
		WalletID:             d.WalletID,
		EntryType:            string(d.Type),
		Amount:               d.Amount,
		BalanceBefore:        d.BalanceBefore,
		BalanceAfter:         d.BalanceAfter,
		Status:               string(d.Status),
		RelatedAppointmentID: d.RelatedAppointmentID,
		Description:          optionalString(d.Description),
		CreatedAt:            d.CreatedAt,
		CreatedBy:            d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:              m.EntryID,
		WalletID:             m.WalletID,
		Type:                 domain.EntryType(m.EntryType),
		Amount:               m.Amount,
		BalanceBefore:        m.BalanceBefore,
		BalanceAfter:         m.BalanceAfter,
		Status:               domain.LedgerEntryStatus(m.Status),
		RelatedAppointmentID: m.RelatedAppointmentID,
		Description:          derefString(m.Description),
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
