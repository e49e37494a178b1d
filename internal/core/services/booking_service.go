package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

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

// BookingDeps groups the collaborators of the booking coordinator.
type BookingDeps struct {
	TxManager        portsrepo.TransactionManager
	DoctorRepo       portsrepo.DoctorReader
	AvailabilityRepo portsrepo.AvailabilityReader
	AppointmentRepo  portsrepo.AppointmentWriter
	WalletRepo       portsrepo.WalletReader
	PromotionRepo    portsrepo.PromotionRepositoryFacade
	Ledger           portssvc.LedgerWriterSvc
	Locker           portssvc.Locker // optional
}

type bookingService struct {
	BaseService
	BookingDeps
	platformFee decimal.Decimal
	location    *time.Location
}

// NewBookingService creates the booking coordinator. platformFee is added to
// every booking; location defines calendar days for availability checks.
func NewBookingService(deps BookingDeps, platformFee decimal.Decimal, location *time.Location, options ...ServiceOption) portssvc.BookingSvc {
	if location == nil {
		location = time.UTC
	}
	return &bookingService{
		BaseService: newBaseService(options),
		BookingDeps: deps,
		platformFee: platformFee,
		location:    location,
	}
}

var _ portssvc.BookingSvc = (*bookingService)(nil)

// Book reserves the slot, redeems the promotion, debits the patient and
// records the appointment with its first status event, all or nothing.
func (s *bookingService) Book(ctx context.Context, patientID string, req dto.BookAppointmentRequest) (*domain.Appointment, error) {
	logger := s.GetLogger(ctx).With(slog.String("doctor_id", req.DoctorID), slog.String("patient_id", patientID))

	slot := domain.Interval{Start: req.StartTime.UTC(), End: req.EndTime.UTC()}
	if !slot.Valid() {
		return nil, fmt.Errorf("%w: startTime must be before endTime", apperrors.ErrValidation)
	}
	now := s.Now()
	if !slot.Start.After(now) {
		return nil, fmt.Errorf("%w: slot must start in the future", apperrors.ErrValidation)
	}

	doctor, err := s.DoctorRepo.FindDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.CanAcceptAt(now) {
		return nil, apperrors.ErrDoctorNotAcceptingAppointments
	}

	// Promotion lookup happens before any lock is taken.
	fees := domain.FeeBreakdown{ConsultationFee: doctor.ConsultationFee, PlatformFee: s.platformFee}
	var promoCode *string
	if req.PromotionCode != nil && strings.TrimSpace(*req.PromotionCode) != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.PromotionCode))
		promo, err := s.PromotionRepo.FindPromotionByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrInvalidPromotionCode
			}
			return nil, err
		}
		if !promo.UsableAt(now) {
			return nil, apperrors.ErrInvalidPromotionCode
		}
		fees.DiscountAmount = promo.DiscountOn(fees.ConsultationFee.Add(fees.PlatformFee))
		promoCode = &code
	}
	total := fees.Total()

	var wallet *domain.Wallet
	if total.IsPositive() {
		wallet, err = s.WalletRepo.FindWalletByOwnerID(ctx, patientID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrInsufficientBalance
			}
			return nil, err
		}
		if wallet.Balance.LessThan(total) {
			return nil, apperrors.ErrInsufficientBalance
		}
	}

	appt := domain.Appointment{
		AppointmentID:   uuid.NewString(),
		PatientID:       patientID,
		DoctorID:        doctor.DoctorID,
		StartTime:       slot.Start,
		EndTime:         slot.End,
		Status:          domain.StatusConfirmed,
		PaymentStatus:   domain.PaymentPaid,
		ConsultationFee: fees.ConsultationFee,
		PlatformFee:     fees.PlatformFee,
		DiscountAmount:  fees.DiscountAmount,
		TotalAmount:     total,
		PromotionCode:   promoCode,
		RefundAmount:    decimal.Zero,
		RefundStatus:    domain.RefundNotApplicable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     patientID,
			LastUpdatedAt: now,
			LastUpdatedBy: patientID,
		},
	}

	book := func(ctx context.Context) error {
		return runInTx(ctx, s.TxManager, func(tx pgx.Tx) error {
			return s.bookInTx(ctx, tx, &appt, wallet)
		})
	}
	if s.Locker != nil {
		err = s.Locker.WithLock(ctx, "doctor:"+doctor.DoctorID, book)
	} else {
		err = book(ctx)
	}
	if err != nil {
		if errors.Is(err, portssvc.ErrLockTimeout) {
			logger.Warn("Booking lock wait timed out")
			return nil, apperrors.ErrSlotUnavailable
		}
		logger.Info("Booking rejected", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Appointment booked",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("total", total.String()))
	return &appt, nil
}

func (s *bookingService) bookInTx(ctx context.Context, tx pgx.Tx, appt *domain.Appointment, wallet *domain.Wallet) error {
	doctor, err := s.DoctorRepo.FindDoctorByIDForUpdate(ctx, tx, appt.DoctorID)
	if err != nil {
		return err
	}
	if !doctor.CanAcceptAt(appt.CreatedAt) {
		return apperrors.ErrDoctorNotAcceptingAppointments
	}

	dayStart := domain.StartOfDay(appt.StartTime, s.location)
	schedule, err := s.AvailabilityRepo.LoadScheduleInTx(ctx, tx, appt.DoctorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if schedule.Location == nil {
		schedule.Location = s.location
	}
	if !schedule.CanHost(appt.Slot()) {
		return apperrors.ErrSlotUnavailable
	}

	if appt.PromotionCode != nil {
		if err := s.PromotionRepo.RedeemPromotionInTx(ctx, tx, *appt.PromotionCode); err != nil {
			return err
		}
	}

	if err := s.AppointmentRepo.CreateAppointmentInTx(ctx, tx, *appt); err != nil {
		return err
	}

	if appt.TotalAmount.IsPositive() {
		_, err := s.Ledger.AppendInTx(ctx, tx, domain.LedgerPosting{
			WalletID:             wallet.WalletID,
			Type:                 domain.EntryAppointmentPayment,
			Amount:               appt.TotalAmount,
			Status:               domain.EntryCompleted,
			RelatedAppointmentID: &appt.AppointmentID,
			Description:          fmt.Sprintf("Appointment payment %s", utils.FormatMoney(appt.TotalAmount, wallet.Currency)),
			CreatedBy:            appt.PatientID,
		})
		if err != nil {
			return err
		}
	}

	return s.AppointmentRepo.InsertStatusEventInTx(ctx, tx, domain.AppointmentStatusEvent{
		EventID:       uuid.NewString(),
		AppointmentID: appt.AppointmentID,
		NewStatus:     appt.Status,
		ChangedBy:     appt.PatientID,
		ActorRole:     domain.RolePatient,
		Reason:        "booked",
		CreatedAt:     appt.CreatedAt,
	})
}
