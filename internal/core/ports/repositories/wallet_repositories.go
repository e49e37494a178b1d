package repositories

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallets and their ledgers
type WalletReader interface {
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	FindWalletByOwnerID(ctx context.Context, ownerID string) (*domain.Wallet, error)
	ListWalletIDs(ctx context.Context) ([]string, error)

	FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListLedgerEntries pages through a wallet's entries, newest first.
	ListLedgerEntries(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListAllLedgerEntriesInTx returns the full chain, oldest first, reading
	// through tx so it can be compared with a locked wallet row.
	ListAllLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.LedgerEntry, error)
}

// WalletWriter defines write operations for wallets and their ledgers.
// Ledger rows are insert-only; only a PENDING entry's status may change.
type WalletWriter interface {
	// CreateWallet inserts a wallet, or returns the existing one for the owner.
	CreateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error)

	// FindWalletByIDForUpdate locks the wallet row for the rest of tx. Every
	// append for the wallet serializes on this lock.
	FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error)

	InsertLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error
	UpdateWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// UpdateLedgerEntryStatusInTx settles a pending entry. It returns
	// apperrors.ErrAlreadyResolved if the entry is not in status from.
	UpdateLedgerEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.LedgerEntryStatus) error
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
