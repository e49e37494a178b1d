// Package banking hands approved withdrawals to the payout process.
package banking

import (
	"context"
	"log/slog"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/google/uuid"
)

// ManualPayout queues approved withdrawals for an operator to transfer by
// hand. The operator reports the outcome through the confirm-transfer endpoint.
type ManualPayout struct {
	logger *slog.Logger
}

func NewManualPayout(logger *slog.Logger) *ManualPayout {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManualPayout{logger: logger}
}

var _ portssvc.BankTransfer = (*ManualPayout)(nil)

// RequestPayout returns a reference the operator quotes when confirming.
func (p *ManualPayout) RequestPayout(ctx context.Context, request domain.WithdrawalRequest) (string, error) {
	ref := "MANUAL-" + uuid.NewString()
	p.logger.InfoContext(ctx, "Withdrawal queued for manual transfer",
		slog.String("request_id", request.RequestID),
		slog.String("wallet_id", request.WalletID),
		slog.String("amount", request.Amount.String()),
		slog.String("bank_bin", request.Destination.BankBin),
		slog.String("transfer_ref", ref))
	return ref, nil
}
