package services

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/jackc/pgx/v5"
)

// LedgerWriterSvc appends to wallet ledgers.
type LedgerWriterSvc interface {
	// Append posts one entry in its own transaction.
	Append(ctx context.Context, posting domain.LedgerPosting) (*domain.LedgerEntry, error)

	// AppendInTx posts one entry inside a caller-owned transaction. The wallet
	// row stays locked until tx ends.
	AppendInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting) (*domain.LedgerEntry, error)
}

// WalletReaderSvc exposes wallets and statements to their owners.
type WalletReaderSvc interface {
	GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error)
	ListEntries(ctx context.Context, ownerID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}

// WalletProvisionerSvc creates wallets on demand.
type WalletProvisionerSvc interface {
	// EnsureWallet returns the owner's wallet, creating it if missing.
	EnsureWallet(ctx context.Context, ownerID string) (*domain.Wallet, error)
}

// LedgerAuditorSvc checks ledger chains against cached balances.
type LedgerAuditorSvc interface {
	VerifyChain(ctx context.Context, walletID string) error

	// VerifyAllChains audits every wallet and returns the ids whose chain is broken.
	VerifyAllChains(ctx context.Context) ([]string, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	WalletReaderSvc
	WalletProvisionerSvc
	LedgerAuditorSvc
}
