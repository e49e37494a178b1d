package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `request_id, wallet_id, amount, bank_bin, account_number, account_name, status,
	ledger_entry_id, reversal_entry_id, resolved_by, resolved_at, transfer_ref, note,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxWithdrawalRepository struct {
	BaseRepository
}

func newPgxWithdrawalRepository(pool *pgxpool.Pool) portsrepo.WithdrawalRepositoryFacade {
	return &PgxWithdrawalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WithdrawalRepositoryFacade = (*PgxWithdrawalRepository)(nil)

func (r *PgxWithdrawalRepository) findOne(ctx context.Context, q querier, query, requestID string) (*domain.WithdrawalRequest, error) {
	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query withdrawal request "+requestID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.WithdrawalRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan withdrawal request "+requestID, err)
	}
	req := mapping.ToDomainWithdrawal(m)
	return &req, nil
}

func (r *PgxWithdrawalRepository) FindWithdrawalByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE request_id = $1;`
	return r.findOne(ctx, r.Pool, query, requestID)
}

// FindWithdrawalByIDForUpdate locks the request so two admins cannot resolve it at once.
func (r *PgxWithdrawalRepository) FindWithdrawalByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE request_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, requestID)
}

func (r *PgxWithdrawalRepository) CreateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawal(request)
	_, err := tx.Exec(ctx, `
		INSERT INTO withdrawal_requests (`+withdrawalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		m.RequestID,
		m.WalletID,
		m.Amount,
		m.BankBin,
		m.AccountNumber,
		m.AccountName,
		m.Status,
		m.LedgerEntryID,
		m.ReversalEntryID,
		m.ResolvedBy,
		m.ResolvedAt,
		m.TransferRef,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: withdrawal request %s", apperrors.ErrDuplicate, m.RequestID)
		}
		return apperrors.NewAppError(500, "failed to insert withdrawal request for wallet "+m.WalletID, err)
	}
	return nil
}

// UpdateWithdrawalInTx writes the resolution columns. Amount, destination and
// the earmark entry never change after creation.
func (r *PgxWithdrawalRepository) UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	m := mapping.ToModelWithdrawal(request)
	tag, err := tx.Exec(ctx, `
		UPDATE withdrawal_requests
		SET status = $2, reversal_entry_id = $3, resolved_by = $4, resolved_at = $5,
		    transfer_ref = $6, note = $7, last_updated_at = $8, last_updated_by = $9
		WHERE request_id = $1;
	`,
		m.RequestID,
		m.Status,
		m.ReversalEntryID,
		m.ResolvedBy,
		m.ResolvedAt,
		m.TransferRef,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update withdrawal request "+m.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
