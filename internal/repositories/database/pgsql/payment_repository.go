package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentOrderColumns = `order_id, order_code, wallet_id, amount, status, checkout_url,
	ledger_entry_id, created_at, completed_at`

type PgxPaymentOrderRepository struct {
	BaseRepository
}

func newPgxPaymentOrderRepository(pool *pgxpool.Pool) portsrepo.PaymentOrderRepositoryFacade {
	return &PgxPaymentOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentOrderRepositoryFacade = (*PgxPaymentOrderRepository)(nil)

func (r *PgxPaymentOrderRepository) CreatePaymentOrder(ctx context.Context, order domain.PaymentOrder) error {
	m := mapping.ToModelPaymentOrder(order)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO payment_orders (`+paymentOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.OrderID,
		m.OrderCode,
		m.WalletID,
		m.Amount,
		m.Status,
		m.CheckoutURL,
		m.LedgerEntryID,
		m.CreatedAt,
		m.CompletedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: payment order code %d", apperrors.ErrDuplicate, m.OrderCode)
		}
		return apperrors.NewAppError(500, "failed to insert payment order "+m.OrderID, err)
	}
	return nil
}

// FindPaymentOrderByCodeForUpdate locks the order so a replayed callback waits
// for the first one and then sees its outcome.
func (r *PgxPaymentOrderRepository) FindPaymentOrderByCodeForUpdate(ctx context.Context, tx pgx.Tx, orderCode int64) (*domain.PaymentOrder, error) {
	rows, err := tx.Query(ctx, `SELECT `+paymentOrderColumns+` FROM payment_orders WHERE order_code = $1 FOR UPDATE;`, orderCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payment order "+strconv.FormatInt(orderCode, 10), err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.PaymentOrder])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan payment order "+strconv.FormatInt(orderCode, 10), err)
	}
	order := mapping.ToDomainPaymentOrder(m)
	return &order, nil
}

func (r *PgxPaymentOrderRepository) UpdatePaymentOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PaymentOrder) error {
	m := mapping.ToModelPaymentOrder(order)
	tag, err := tx.Exec(ctx, `
		UPDATE payment_orders
		SET status = $2, ledger_entry_id = $3, completed_at = $4
		WHERE order_id = $1;
	`, m.OrderID, m.Status, m.LedgerEntryID, m.CompletedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment order "+m.OrderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxPromotionRepository struct {
	BaseRepository
}

func newPgxPromotionRepository(pool *pgxpool.Pool) portsrepo.PromotionRepositoryFacade {
	return &PgxPromotionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PromotionRepositoryFacade = (*PgxPromotionRepository)(nil)

func (r *PgxPromotionRepository) FindPromotionByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT code, discount_type, discount_value, max_usage, used_count, starts_at, ends_at, is_active
		FROM promotions WHERE code = $1;
	`, code)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query promotion "+code, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Promotion])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan promotion "+code, err)
	}
	promo := mapping.ToDomainPromotion(m)
	return &promo, nil
}

// RedeemPromotionInTx consumes one use of the code. The usability check runs
// in the same statement so two bookings cannot both take the last use.
func (r *PgxPromotionRepository) RedeemPromotionInTx(ctx context.Context, tx pgx.Tx, code string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE promotions
		SET used_count = used_count + 1
		WHERE code = $1
		  AND is_active
		  AND starts_at <= NOW() AND NOW() < ends_at
		  AND (max_usage IS NULL OR used_count < max_usage);
	`, code)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return fmt.Errorf("%w: %s has no uses left", apperrors.ErrInvalidPromotionCode, code)
		}
		return apperrors.NewAppError(500, "failed to redeem promotion "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidPromotionCode, code)
	}
	return nil
}

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsReader {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsReader = (*PgxSettingsRepository)(nil)

// GetSetting reads one value from system_configurations.
func (r *PgxSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.Pool.QueryRow(ctx, `SELECT config_value FROM system_configurations WHERE config_key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to read setting "+key, err)
	}
	return value, nil
}
