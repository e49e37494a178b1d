package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultStatementPageSize = 20

// ledgerService owns every balance change. Nothing else writes wallets.
type ledgerService struct {
	BaseService
	txManager  portsrepo.TransactionManager
	walletRepo portsrepo.WalletRepositoryFacade
	currency   string
}

// NewLedgerService creates the wallet ledger service.
func NewLedgerService(txManager portsrepo.TransactionManager, walletRepo portsrepo.WalletRepositoryFacade, currency string, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options),
		txManager:   txManager,
		walletRepo:  walletRepo,
		currency:    currency,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) Append(ctx context.Context, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	if err := validatePosting(posting); err != nil {
		return nil, err
	}
	var entry *domain.LedgerEntry
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		entry, err = s.AppendInTx(ctx, tx, posting)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// validatePosting rejects postings that could never be written, before any
// transaction or row lock is taken.
func validatePosting(posting domain.LedgerPosting) error {
	if !posting.Amount.IsPositive() {
		return fmt.Errorf("%w: ledger amount must be positive", apperrors.ErrValidation)
	}
	if _, err := posting.Type.Direction(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (s *ledgerService) AppendInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	if err := validatePosting(posting); err != nil {
		return nil, err
	}
	if posting.Status == "" {
		posting.Status = domain.EntryCompleted
	}
	if posting.CreatedBy == "" {
		posting.CreatedBy = string(domain.RoleSystem)
	}

	wallet, err := s.walletRepo.FindWalletByIDForUpdate(ctx, tx, posting.WalletID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, fmt.Errorf("%w: wallet %s is inactive", apperrors.ErrForbidden, wallet.WalletID)
	}

	balanceAfter, err := accounting.ApplyEntry(wallet.Balance, posting.Type, posting.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if balanceAfter.IsNegative() {
		s.LogDebug(ctx, "Debit rejected for insufficient balance",
			slog.String("wallet_id", wallet.WalletID),
			slog.String("balance", wallet.Balance.String()),
			slog.String("amount", posting.Amount.String()))
		return nil, apperrors.ErrInsufficientBalance
	}

	now := s.Now()
	entry := domain.LedgerEntry{
		EntryID:              uuid.NewString(),
		WalletID:             wallet.WalletID,
		Type:                 posting.Type,
		Amount:               posting.Amount,
		BalanceBefore:        wallet.Balance,
		BalanceAfter:         balanceAfter,
		Status:               posting.Status,
		RelatedAppointmentID: posting.RelatedAppointmentID,
		Description:          posting.Description,
		CreatedAt:            now,
		CreatedBy:            posting.CreatedBy,
	}

	if err := s.walletRepo.InsertLedgerEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := s.walletRepo.UpdateWalletBalanceInTx(ctx, tx, wallet.WalletID, balanceAfter, posting.CreatedBy, now); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry appended",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("amount", entry.Amount.String()),
		slog.String("balance_after", balanceAfter.String()))
	return &entry, nil
}

func (s *ledgerService) GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByOwnerID(ctx, ownerID)
}

func (s *ledgerService) ListEntries(ctx context.Context, ownerID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	wallet, err := s.walletRepo.FindWalletByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultStatementPageSize
	}
	entries, nextToken, err := s.walletRepo.ListLedgerEntries(ctx, wallet.WalletID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListLedgerEntriesResponse(entries, nextToken)
	return &resp, nil
}

func (s *ledgerService) EnsureWallet(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByOwnerID(ctx, ownerID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.Now()
	created, err := s.walletRepo.CreateWallet(ctx, domain.Wallet{
		WalletID: uuid.NewString(),
		OwnerID:  ownerID,
		Currency: s.currency,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Wallet provisioned", slog.String("owner_id", ownerID), slog.String("wallet_id", created.WalletID))
	return created, nil
}

// VerifyChain locks the wallet and checks its full ledger against the cached
// balance. A broken chain is reported as a *domain.ChainBreak.
func (s *ledgerService) VerifyChain(ctx context.Context, walletID string) error {
	return runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		wallet, err := s.walletRepo.FindWalletByIDForUpdate(ctx, tx, walletID)
		if err != nil {
			return err
		}
		entries, err := s.walletRepo.ListAllLedgerEntriesInTx(ctx, tx, walletID)
		if err != nil {
			return err
		}
		return domain.VerifyChain(entries, &wallet.Balance)
	})
}

func (s *ledgerService) VerifyAllChains(ctx context.Context) ([]string, error) {
	walletIDs, err := s.walletRepo.ListWalletIDs(ctx)
	if err != nil {
		return nil, err
	}

	var broken []string
	for _, walletID := range walletIDs {
		err := s.VerifyChain(ctx, walletID)
		if err == nil {
			continue
		}
		var chainBreak *domain.ChainBreak
		if !errors.As(err, &chainBreak) {
			return broken, err
		}
		s.LogError(ctx, err, "Ledger chain verification failed", slog.String("wallet_id", walletID))
		broken = append(broken, walletID)
	}
	return broken, nil
}
