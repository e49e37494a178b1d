package repositories

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// WithdrawalRepositoryFacade persists withdrawal requests.
type WithdrawalRepositoryFacade interface {
	FindWithdrawalByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error)
	FindWithdrawalByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error)
	CreateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error
	UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error
}
