package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WithdrawalDeps groups the collaborators of the withdrawal workflow.
type WithdrawalDeps struct {
	TxManager      portsrepo.TransactionManager
	WalletRepo     portsrepo.WalletRepositoryFacade
	WithdrawalRepo portsrepo.WithdrawalRepositoryFacade
	Ledger         portssvc.LedgerWriterSvc
	Bank           portssvc.BankTransfer // optional
}

type withdrawalService struct {
	BaseService
	WithdrawalDeps
	minAmount decimal.Decimal
}

// NewWithdrawalService creates the withdrawal workflow. Requests below
// minAmount are rejected.
func NewWithdrawalService(deps WithdrawalDeps, minAmount decimal.Decimal, options ...ServiceOption) portssvc.WithdrawalSvcFacade {
	return &withdrawalService{
		BaseService:    newBaseService(options),
		WithdrawalDeps: deps,
		minAmount:      minAmount,
	}
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

func maskAccount(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, ownerID string, req dto.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.LessThan(s.minAmount) {
		return nil, fmt.Errorf("%w: minimum withdrawal is %s", apperrors.ErrValidation, s.minAmount)
	}

	wallet, err := s.WalletRepo.FindWalletByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	request := domain.WithdrawalRequest{
		RequestID: uuid.NewString(),
		WalletID:  wallet.WalletID,
		Amount:    req.Amount,
		Destination: domain.BankAccount{
			BankBin:       req.BankBin,
			AccountNumber: req.AccountNumber,
			AccountName:   req.AccountName,
		},
		Status: domain.WithdrawalPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	err = runInTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		entry, err := s.Ledger.AppendInTx(ctx, tx, domain.LedgerPosting{
			WalletID:    wallet.WalletID,
			Type:        domain.EntryWithdrawal,
			Amount:      req.Amount,
			Status:      domain.EntryPending,
			Description: fmt.Sprintf("Withdrawal to %s %s", req.BankBin, maskAccount(req.AccountNumber)),
			CreatedBy:   ownerID,
		})
		if err != nil {
			return err
		}
		request.LedgerEntryID = entry.EntryID
		return s.WithdrawalRepo.CreateWithdrawalInTx(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal requested",
		slog.String("request_id", request.RequestID),
		slog.String("wallet_id", wallet.WalletID),
		slog.String("amount", request.Amount.String()))
	return &request, nil
}

func (s *withdrawalService) Resolve(ctx context.Context, requestID string, decision domain.WithdrawalDecision, approverID, note string) (*domain.WithdrawalRequest, error) {
	if decision != domain.DecisionApprove && decision != domain.DecisionReject {
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, decision)
	}

	var request *domain.WithdrawalRequest
	err := runInTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		var err error
		request, err = s.WithdrawalRepo.FindWithdrawalByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.Status != domain.WithdrawalPending {
			return apperrors.ErrAlreadyResolved
		}

		if decision == domain.DecisionReject {
			if err := s.reverseInTx(ctx, tx, request, approverID, "Withdrawal rejected"); err != nil {
				return err
			}
			request.Status = domain.WithdrawalRejected
		} else {
			request.Status = domain.WithdrawalApproved
		}

		now := s.Now()
		request.ResolvedBy = &approverID
		request.ResolvedAt = &now
		request.Note = note
		request.LastUpdatedAt = now
		request.LastUpdatedBy = approverID
		return s.WithdrawalRepo.UpdateWithdrawalInTx(ctx, tx, *request)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal resolved",
		slog.String("request_id", requestID),
		slog.String("status", string(request.Status)),
		slog.String("approver_id", approverID))

	// The payout runs after commit; its outcome comes back via ConfirmTransfer.
	if request.Status == domain.WithdrawalApproved && s.Bank != nil {
		ref, err := s.Bank.RequestPayout(ctx, *request)
		if err != nil {
			s.LogError(ctx, err, "Payout hand-off failed, awaiting manual transfer result", slog.String("request_id", requestID))
		} else {
			s.LogInfo(ctx, "Payout handed to bank", slog.String("request_id", requestID), slog.String("payout_ref", ref))
		}
	}
	return request, nil
}

func (s *withdrawalService) ConfirmTransfer(ctx context.Context, requestID string, success bool, transferRef, note, actorID string) (*domain.WithdrawalRequest, error) {
	var request *domain.WithdrawalRequest
	err := runInTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		var err error
		request, err = s.WithdrawalRepo.FindWithdrawalByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		switch request.Status {
		case domain.WithdrawalApproved:
		case domain.WithdrawalPending:
			return fmt.Errorf("%w: withdrawal has not been approved", apperrors.ErrValidation)
		default:
			return apperrors.ErrAlreadyResolved
		}

		if success {
			if err := s.WalletRepo.UpdateLedgerEntryStatusInTx(ctx, tx, request.LedgerEntryID, domain.EntryPending, domain.EntryCompleted); err != nil {
				return err
			}
			request.Status = domain.WithdrawalCompleted
		} else {
			if err := s.reverseInTx(ctx, tx, request, actorID, "Withdrawal transfer failed"); err != nil {
				return err
			}
			request.Status = domain.WithdrawalRejected
		}

		now := s.Now()
		if transferRef != "" {
			request.TransferRef = &transferRef
		}
		if note != "" {
			request.Note = note
		}
		request.LastUpdatedAt = now
		request.LastUpdatedBy = actorID
		return s.WithdrawalRepo.UpdateWithdrawalInTx(ctx, tx, *request)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal transfer recorded",
		slog.String("request_id", requestID),
		slog.Bool("success", success),
		slog.String("status", string(request.Status)))
	return request, nil
}

// reverseInTx restores the earmarked funds with a compensating credit and
// marks the original pending debit as reversed.
func (s *withdrawalService) reverseInTx(ctx context.Context, tx pgx.Tx, request *domain.WithdrawalRequest, actorID, reason string) error {
	entry, err := s.Ledger.AppendInTx(ctx, tx, domain.LedgerPosting{
		WalletID:    request.WalletID,
		Type:        domain.EntryWithdrawalReversal,
		Amount:      request.Amount,
		Status:      domain.EntryCompleted,
		Description: fmt.Sprintf("%s, %s returned", reason, utils.FormatMoney(request.Amount, "")),
		CreatedBy:   actorID,
	})
	if err != nil {
		return err
	}
	if err := s.WalletRepo.UpdateLedgerEntryStatusInTx(ctx, tx, request.LedgerEntryID, domain.EntryPending, domain.EntryReversed); err != nil {
		return err
	}
	request.ReversalID = &entry.EntryID
	return nil
}
