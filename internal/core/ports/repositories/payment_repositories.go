package repositories

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PaymentOrderRepositoryFacade persists wallet top-up orders.
type PaymentOrderRepositoryFacade interface {
	CreatePaymentOrder(ctx context.Context, order domain.PaymentOrder) error
	FindPaymentOrderByCodeForUpdate(ctx context.Context, tx pgx.Tx, orderCode int64) (*domain.PaymentOrder, error)
	UpdatePaymentOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PaymentOrder) error
}

// PromotionRepositoryFacade reads and redeems promotion codes.
type PromotionRepositoryFacade interface {
	FindPromotionByCode(ctx context.Context, code string) (*domain.Promotion, error)

	// RedeemPromotionInTx bumps the usage counter if the code is still usable
	// at the time of the call; otherwise it returns apperrors.ErrInvalidPromotionCode.
	RedeemPromotionInTx(ctx context.Context, tx pgx.Tx, code string) error
}

// SettingsReader reads the central system configuration table. Values are
// read on every call; callers must not cache them.
type SettingsReader interface {
	// GetSetting returns apperrors.ErrNotFound for an unknown key.
	GetSetting(ctx context.Context, key string) (string, error)
}
