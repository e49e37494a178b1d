package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/utils"
	"github.com/dteedee/MEDIX-sub004/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PatientRefundPercentageKey is the system configuration key holding the share
// of the total refunded when a patient cancels.
const PatientRefundPercentageKey = "APPOINTMENT_PATIENT_CANCEL_REFUND_PERCENTAGE"

var fullRefund = decimal.NewFromInt(100)

// CancellationDeps groups the collaborators of the cancellation engine.
type CancellationDeps struct {
	TxManager       portsrepo.TransactionManager
	AppointmentRepo portsrepo.AppointmentWriter
	DoctorRepo      portsrepo.DoctorReader
	WalletRepo      portsrepo.WalletReader
	SettingsRepo    portsrepo.SettingsReader
	StateMachine    portssvc.AppointmentTransitionSvc
	Ledger          portssvc.LedgerWriterSvc
}

type cancellationService struct {
	BaseService
	CancellationDeps
	cutoff time.Duration
}

// NewCancellationService creates the cancellation engine. Patients may not
// cancel later than cutoff before the appointment starts.
func NewCancellationService(deps CancellationDeps, cutoff time.Duration, options ...ServiceOption) portssvc.CancellationSvc {
	return &cancellationService{
		BaseService:      newBaseService(options),
		CancellationDeps: deps,
		cutoff:           cutoff,
	}
}

var _ portssvc.CancellationSvc = (*cancellationService)(nil)

func (s *cancellationService) Cancel(ctx context.Context, appointmentID string, role domain.ActorRole, actorID, reason string) (*domain.Appointment, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	var appt *domain.Appointment
	err := runInTx(ctx, s.TxManager, func(tx pgx.Tx) error {
		var err error
		appt, err = s.AppointmentRepo.FindAppointmentByIDForUpdate(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if err := authorizeAppointmentAccess(ctx, s.DoctorRepo, appt, actorID, role); err != nil {
			return err
		}
		if appt.Status.IsTerminal() {
			return fmt.Errorf("%w: appointment is already %s", apperrors.ErrInvalidTransition, appt.Status)
		}

		now := s.Now()
		if role == domain.RolePatient && now.After(appt.StartTime.Add(-s.cutoff)) {
			return apperrors.ErrCancellationWindowViolation
		}

		if err := s.StateMachine.TransitionInTx(ctx, tx, appt, domain.CancelStatusFor(role), actorID, role, reason); err != nil {
			return err
		}

		if appt.PaymentStatus != domain.PaymentPaid || !appt.TotalAmount.IsPositive() {
			return nil
		}
		return s.refundInTx(ctx, tx, appt, role, actorID, now)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *cancellationService) refundInTx(ctx context.Context, tx pgx.Tx, appt *domain.Appointment, role domain.ActorRole, actorID string, now time.Time) error {
	percentage, err := s.refundPercentage(ctx, role)
	if err != nil {
		return err
	}

	refund := accounting.RefundAmount(appt.TotalAmount, percentage)
	status := domain.RefundNotApplicable
	if refund.IsPositive() {
		wallet, err := s.WalletRepo.FindWalletByOwnerID(ctx, appt.PatientID)
		if err != nil {
			return err
		}
		_, err = s.Ledger.AppendInTx(ctx, tx, domain.LedgerPosting{
			WalletID:             wallet.WalletID,
			Type:                 domain.EntryRefund,
			Amount:               refund,
			Status:               domain.EntryCompleted,
			RelatedAppointmentID: &appt.AppointmentID,
			Description:          fmt.Sprintf("Refund %s%% of %s", percentage.String(), utils.FormatMoney(appt.TotalAmount, wallet.Currency)),
			CreatedBy:            actorID,
		})
		if err != nil {
			return err
		}
		status = domain.RefundRefunded
	}

	if err := s.AppointmentRepo.UpdateAppointmentRefundInTx(ctx, tx, appt.AppointmentID, refund, status, now, actorID); err != nil {
		return err
	}
	appt.RefundAmount = refund
	appt.RefundStatus = status
	appt.RefundProcessedAt = &now

	s.LogInfo(ctx, "Cancellation refund processed",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("role", string(role)),
		slog.String("percentage", percentage.String()),
		slog.String("refund", refund.String()))
	return nil
}

// refundPercentage reads the patient policy fresh on every call. Every other
// initiator gets a full refund.
func (s *cancellationService) refundPercentage(ctx context.Context, role domain.ActorRole) (decimal.Decimal, error) {
	if role != domain.RolePatient {
		return fullRefund, nil
	}
	raw, err := s.SettingsRepo.GetSetting(ctx, PatientRefundPercentageKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewAppError(500, "refund policy "+PatientRefundPercentageKey+" is not configured", nil)
		}
		return decimal.Zero, err
	}
	percentage, err := accounting.ParsePercentage(raw)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "refund policy "+PatientRefundPercentageKey+" is invalid", err)
	}
	return percentage, nil
}
