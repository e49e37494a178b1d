package services

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/shopspring/decimal"
)

// WithdrawalRequesterSvc lets wallet owners ask for payouts.
type WithdrawalRequesterSvc interface {
	RequestWithdrawal(ctx context.Context, ownerID string, req dto.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error)
}

// WithdrawalResolverSvc lets approvers settle payouts.
type WithdrawalResolverSvc interface {
	// Resolve approves or rejects a pending request. A request can be
	// resolved once; later calls fail with apperrors.ErrAlreadyResolved.
	Resolve(ctx context.Context, requestID string, decision domain.WithdrawalDecision, approverID, note string) (*domain.WithdrawalRequest, error)

	// ConfirmTransfer records the bank transfer outcome of an approved request.
	ConfirmTransfer(ctx context.Context, requestID string, success bool, transferRef, note, actorID string) (*domain.WithdrawalRequest, error)
}

// WithdrawalSvcFacade combines all withdrawal-related service interfaces
type WithdrawalSvcFacade interface {
	WithdrawalRequesterSvc
	WithdrawalResolverSvc
}

// TopUpSvc funds wallets through the external payment gateway.
type TopUpSvc interface {
	CreateOrder(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.PaymentOrder, error)

	// HandleCallback settles an order from a signed gateway callback. Replays
	// of an already settled order return it unchanged.
	HandleCallback(ctx context.Context, req dto.PaymentCallbackRequest) (*domain.PaymentOrder, error)
}
