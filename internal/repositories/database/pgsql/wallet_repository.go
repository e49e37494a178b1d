package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/dteedee/MEDIX-sub004/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	walletColumns = `wallet_id, owner_id, balance, currency, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

	ledgerEntryColumns = `entry_id, wallet_id, entry_type, amount, balance_before, balance_after,
	status, related_appointment_id, description, created_at, created_by`

	defaultLedgerPageSize = 20
)

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func (r *PgxWalletRepository) findWallet(ctx context.Context, q querier, query string, arg string) (*domain.Wallet, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallet "+arg, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Wallet])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan wallet "+arg, err)
	}
	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`
	return r.findWallet(ctx, r.Pool, query, walletID)
}

// FindWalletByOwnerID retrieves the wallet owned by a user.
func (r *PgxWalletRepository) FindWalletByOwnerID(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1;`
	return r.findWallet(ctx, r.Pool, query, ownerID)
}

// FindWalletByIDForUpdate locks the wallet row for the rest of tx.
func (r *PgxWalletRepository) FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1 FOR UPDATE;`
	return r.findWallet(ctx, tx, query, walletID)
}

// ListWalletIDs returns every wallet, used by the ledger audit.
func (r *PgxWalletRepository) ListWalletIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT wallet_id FROM wallets ORDER BY wallet_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list wallets", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan wallet ids", err)
	}
	return ids, nil
}

// CreateWallet inserts a wallet. When the owner already has one the existing
// wallet is returned instead.
func (r *PgxWalletRepository) CreateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	m := mapping.ToModelWallet(wallet)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO wallets (`+walletColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (owner_id) DO NOTHING;
	`,
		m.WalletID,
		m.OwnerID,
		m.Balance,
		m.Currency,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to create wallet for owner "+m.OwnerID, err)
	}
	return r.FindWalletByOwnerID(ctx, m.OwnerID)
}

// UpdateWalletBalanceInTx overwrites the cached balance. Callers hold the
// wallet lock and have just inserted the matching ledger entry.
func (r *PgxWalletRepository) UpdateWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE wallets
		SET balance = $2, last_updated_by = $3, last_updated_at = $4
		WHERE wallet_id = $1;
	`, walletID, balance, updatedBy, updatedAt)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrInsufficientBalance, walletID)
		}
		return apperrors.NewAppError(500, "failed to update balance of wallet "+walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertLedgerEntryInTx appends one entry to the wallet's chain.
func (r *PgxWalletRepository) InsertLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := tx.Exec(ctx, `
		INSERT INTO wallet_ledger_entries (`+ledgerEntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		m.EntryID,
		m.WalletID,
		m.EntryType,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.Status,
		m.RelatedAppointmentID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: ledger entry %s", apperrors.ErrDuplicate, m.EntryID)
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry for wallet "+m.WalletID, err)
	}
	return nil
}

// UpdateLedgerEntryStatusInTx settles an entry that is still in status from.
func (r *PgxWalletRepository) UpdateLedgerEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.LedgerEntryStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE wallet_ledger_entries SET status = $3
		WHERE entry_id = $1 AND status = $2;
	`, entryID, string(from), string(to))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ledger entry %s is not %s", apperrors.ErrAlreadyResolved, entryID, from)
	}
	return nil
}

// FindLedgerEntryByID retrieves a single ledger entry.
func (r *PgxWalletRepository) FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+ledgerEntryColumns+` FROM wallet_ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entry "+entryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan ledger entry "+entryID, err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListAllLedgerEntriesInTx returns the full chain in append order.
func (r *PgxWalletRepository) ListAllLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.LedgerEntry, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+ledgerEntryColumns+`
		FROM wallet_ledger_entries
		WHERE wallet_id = $1
		ORDER BY seq;
	`, walletID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger of wallet "+walletID, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger of wallet "+walletID, err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListLedgerEntries pages through a wallet's entries newest first. The token
// points at the last entry of the previous page.
func (r *PgxWalletRepository) ListLedgerEntries(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerEntryColumns + ` FROM wallet_ledger_entries WHERE wallet_id = $1`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`
	args := []any{walletID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for wallet "+walletID, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entries for wallet "+walletID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}
