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

// gatewaySuccessCode is the data.code the gateway reports for a paid order.
const gatewaySuccessCode = "00"

type topUpService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	paymentRepo portsrepo.PaymentOrderRepositoryFacade
	ledger      portssvc.LedgerSvcFacade
	gateway     portssvc.PaymentGateway
}

// NewTopUpService creates the wallet top-up service.
func NewTopUpService(txManager portsrepo.TransactionManager, paymentRepo portsrepo.PaymentOrderRepositoryFacade, ledger portssvc.LedgerSvcFacade, gateway portssvc.PaymentGateway, options ...ServiceOption) portssvc.TopUpSvc {
	return &topUpService{
		BaseService: newBaseService(options),
		txManager:   txManager,
		paymentRepo: paymentRepo,
		ledger:      ledger,
		gateway:     gateway,
	}
}

var _ portssvc.TopUpSvc = (*topUpService)(nil)

func (s *topUpService) CreateOrder(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.PaymentOrder, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Round(0)) {
		return nil, fmt.Errorf("%w: amount must be a positive whole number", apperrors.ErrValidation)
	}

	wallet, err := s.ledger.EnsureWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	orderCode, err := utils.GenerateOrderCode()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate order code", err)
	}

	checkoutURL, err := s.gateway.CreateCheckout(ctx, portssvc.CheckoutRequest{
		OrderCode:   orderCode,
		Amount:      amount,
		Description: fmt.Sprintf("MEDIX %d", orderCode%1_000_000_000),
	})
	if err != nil {
		return nil, apperrors.NewAppError(502, "payment gateway unavailable", err)
	}

	order := domain.PaymentOrder{
		OrderID:     uuid.NewString(),
		OrderCode:   orderCode,
		WalletID:    wallet.WalletID,
		Amount:      amount,
		Status:      domain.OrderPending,
		CheckoutURL: checkoutURL,
		CreatedAt:   s.Now(),
	}
	if err := s.paymentRepo.CreatePaymentOrder(ctx, order); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Top-up order created",
		slog.Int64("order_code", orderCode),
		slog.String("wallet_id", wallet.WalletID),
		slog.String("amount", amount.String()))
	return &order, nil
}

func (s *topUpService) HandleCallback(ctx context.Context, req dto.PaymentCallbackRequest) (*domain.PaymentOrder, error) {
	if !s.gateway.VerifyCallback(req.Data, req.Signature) {
		s.GetLogger(ctx).Warn("Payment callback signature mismatch", slog.Int64("order_code", req.Data.OrderCode))
		return nil, fmt.Errorf("%w: invalid callback signature", apperrors.ErrValidation)
	}

	var order *domain.PaymentOrder
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		order, err = s.paymentRepo.FindPaymentOrderByCodeForUpdate(ctx, tx, req.Data.OrderCode)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderPending {
			return nil
		}

		now := s.Now()
		if req.Success && req.Data.Code == gatewaySuccessCode {
			if !decimal.NewFromInt(req.Data.Amount).Equal(order.Amount) {
				return fmt.Errorf("%w: paid amount %d does not match order amount %s", apperrors.ErrValidation, req.Data.Amount, order.Amount)
			}
			entry, err := s.ledger.AppendInTx(ctx, tx, domain.LedgerPosting{
				WalletID:    order.WalletID,
				Type:        domain.EntryDeposit,
				Amount:      order.Amount,
				Status:      domain.EntryCompleted,
				Description: fmt.Sprintf("Top-up #%d ref %s", order.OrderCode, req.Data.Reference),
				CreatedBy:   string(domain.RoleSystem),
			})
			if err != nil {
				return err
			}
			order.Status = domain.OrderSucceeded
			order.LedgerEntryID = &entry.EntryID
		} else {
			order.Status = domain.OrderFailed
		}
		order.CompletedAt = &now
		return s.paymentRepo.UpdatePaymentOrderInTx(ctx, tx, *order)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment callback processed",
		slog.Int64("order_code", order.OrderCode),
		slog.String("status", string(order.Status)))
	return order, nil
}
