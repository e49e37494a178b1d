package services

import (
	"context"
	"errors"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/shopspring/decimal"
)

// ErrLockTimeout is returned by a Locker that could not acquire the key in time.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker serializes work on a key across processes.
type Locker interface {
	// WithLock runs fn while holding key. It returns ErrLockTimeout when the
	// key stays held past the configured wait.
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// CheckoutRequest describes a gateway payment link to create.
type CheckoutRequest struct {
	OrderCode   int64
	Amount      decimal.Decimal
	Description string
}

// PaymentGateway is the external payment provider used for top-ups.
type PaymentGateway interface {
	// CreateCheckout returns the URL the payer is redirected to.
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)

	// VerifyCallback checks the callback signature.
	VerifyCallback(data dto.PaymentCallbackData, signature string) bool
}

// BankTransfer hands approved withdrawals to the bank rails. The outcome
// arrives later through WithdrawalResolverSvc.ConfirmTransfer.
type BankTransfer interface {
	RequestPayout(ctx context.Context, request domain.WithdrawalRequest) (string, error)
}
