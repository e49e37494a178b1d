package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CancellationServiceTestSuite struct {
	suite.Suite
	txManager       *MockTxManager
	appointmentRepo *MockAppointmentRepository
	doctorRepo      *MockDoctorRepository
	walletRepo      *MockWalletRepository
	settingsRepo    *MockSettingsRepository
	ledger          *MockLedgerService
	service         portssvc.CancellationSvc

	now   time.Time
	start time.Time
}

func (suite *CancellationServiceTestSuite) SetupTest() {
	suite.txManager = new(MockTxManager)
	suite.appointmentRepo = new(MockAppointmentRepository)
	suite.doctorRepo = new(MockDoctorRepository)
	suite.walletRepo = new(MockWalletRepository)
	suite.settingsRepo = new(MockSettingsRepository)
	suite.ledger = new(MockLedgerService)
	suite.now = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	suite.start = suite.now.Add(3 * time.Hour)
	suite.build(suite.now)
}

// build wires the real state machine over the mocked appointment store so
// cancellations go through the same transition table as everything else.
func (suite *CancellationServiceTestSuite) build(now time.Time) {
	clock := services.WithClock(fixedClock(now))
	stateMachine := services.NewAppointmentService(suite.txManager, suite.appointmentRepo, suite.doctorRepo, clock)
	suite.service = services.NewCancellationService(services.CancellationDeps{
		TxManager:       suite.txManager,
		AppointmentRepo: suite.appointmentRepo,
		DoctorRepo:      suite.doctorRepo,
		WalletRepo:      suite.walletRepo,
		SettingsRepo:    suite.settingsRepo,
		StateMachine:    stateMachine,
		Ledger:          suite.ledger,
	}, 2*time.Hour, clock)
}

func (suite *CancellationServiceTestSuite) appointment() *domain.Appointment {
	return &domain.Appointment{
		AppointmentID: "appt-1",
		PatientID:     "patient-1",
		DoctorID:      "doc-1",
		StartTime:     suite.start,
		EndTime:       suite.start.Add(30 * time.Minute),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		TotalAmount:   decimal.NewFromInt(320000),
		RefundStatus:  domain.RefundNotApplicable,
	}
}

func (suite *CancellationServiceTestSuite) expectTransition(ctx context.Context, tx any, to domain.AppointmentStatus, actorID string, at time.Time) {
	suite.appointmentRepo.On("UpdateAppointmentStatusInTx", ctx, tx, "appt-1", domain.StatusConfirmed, to, actorID, at).Return(nil).Once()
	suite.appointmentRepo.On("InsertStatusEventInTx", ctx, tx, mock.MatchedBy(func(ev domain.AppointmentStatusEvent) bool {
		return ev.NewStatus == to
	})).Return(nil).Once()
}

func (suite *CancellationServiceTestSuite) TestCancel_PatientGetsConfiguredShare() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, true)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByPatient, "patient-1", suite.now)
	suite.settingsRepo.On("GetSetting", ctx, services.PatientRefundPercentageKey).Return("80", nil).Once()
	suite.walletRepo.On("FindWalletByOwnerID", ctx, "patient-1").Return(&domain.Wallet{WalletID: "wallet-1", Currency: "VND"}, nil).Once()
	suite.ledger.On("AppendInTx", ctx, tx, mock.MatchedBy(func(p domain.LedgerPosting) bool {
		return p.WalletID == "wallet-1" && p.Type == domain.EntryRefund && p.Amount.Equal(decimal.NewFromInt(256000))
	})).Return(&domain.LedgerEntry{EntryID: "refund-1"}, nil).Once()
	suite.appointmentRepo.On("UpdateAppointmentRefundInTx", ctx, tx, "appt-1", decEq(256000), domain.RefundRefunded, suite.now, "patient-1").Return(nil).Once()

	appt, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "schedule clash")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelledByPatient, appt.Status)
	suite.Equal(domain.RefundRefunded, appt.RefundStatus)
	suite.True(appt.RefundAmount.Equal(decimal.NewFromInt(256000)))
	suite.appointmentRepo.AssertExpectations(suite.T())
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *CancellationServiceTestSuite) TestCancel_DoctorRefundsInFull() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, true)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()
	suite.doctorRepo.On("FindDoctorByID", ctx, "doc-1").Return(&domain.Doctor{DoctorID: "doc-1", UserID: "doc-user"}, nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByDoctor, "doc-user", suite.now)
	suite.walletRepo.On("FindWalletByOwnerID", ctx, "patient-1").Return(&domain.Wallet{WalletID: "wallet-1"}, nil).Once()
	suite.ledger.On("AppendInTx", ctx, tx, mock.MatchedBy(func(p domain.LedgerPosting) bool {
		return p.Amount.Equal(decimal.NewFromInt(320000))
	})).Return(&domain.LedgerEntry{EntryID: "refund-1"}, nil).Once()
	suite.appointmentRepo.On("UpdateAppointmentRefundInTx", ctx, tx, "appt-1", decEq(320000), domain.RefundRefunded, suite.now, "doc-user").Return(nil).Once()

	appt, err := suite.service.Cancel(ctx, "appt-1", domain.RoleDoctor, "doc-user", "sick")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelledByDoctor, appt.Status)
	suite.settingsRepo.AssertNotCalled(suite.T(), "GetSetting", mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_PatientInsideCutoffRejected() {
	ctx := context.Background()
	late := suite.start.Add(-2*time.Hour + time.Second)
	suite.build(late)
	tx := expectTx(suite.txManager, false)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()

	_, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "")

	suite.ErrorIs(err, apperrors.ErrCancellationWindowViolation)
	suite.appointmentRepo.AssertNotCalled(suite.T(), "UpdateAppointmentStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.ledger.AssertNotCalled(suite.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_PatientExactlyAtCutoffAllowed() {
	ctx := context.Background()
	atCutoff := suite.start.Add(-2 * time.Hour)
	suite.build(atCutoff)
	tx := expectTx(suite.txManager, true)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByPatient, "patient-1", atCutoff)
	suite.settingsRepo.On("GetSetting", ctx, services.PatientRefundPercentageKey).Return("0", nil).Once()
	suite.appointmentRepo.On("UpdateAppointmentRefundInTx", ctx, tx, "appt-1", decEq(0), domain.RefundNotApplicable, atCutoff, "patient-1").Return(nil).Once()

	appt, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "")

	suite.Require().NoError(err)
	suite.Equal(domain.RefundNotApplicable, appt.RefundStatus)
	suite.ledger.AssertNotCalled(suite.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_DoctorInsideCutoffStillAllowed() {
	ctx := context.Background()
	late := suite.start.Add(-10 * time.Minute)
	suite.build(late)
	tx := expectTx(suite.txManager, true)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByDoctor, "admin-1", late)
	suite.walletRepo.On("FindWalletByOwnerID", ctx, "patient-1").Return(&domain.Wallet{WalletID: "wallet-1"}, nil).Once()
	suite.ledger.On("AppendInTx", ctx, tx, mock.AnythingOfType("domain.LedgerPosting")).Return(&domain.LedgerEntry{EntryID: "refund-1"}, nil).Once()
	suite.appointmentRepo.On("UpdateAppointmentRefundInTx", ctx, tx, "appt-1", decEq(320000), domain.RefundRefunded, late, "admin-1").Return(nil).Once()

	_, err := suite.service.Cancel(ctx, "appt-1", domain.RoleAdmin, "admin-1", "clinic closed")

	suite.Require().NoError(err)
}

func (suite *CancellationServiceTestSuite) TestCancel_AlreadyCancelled() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, false)
	appt := suite.appointment()
	appt.Status = domain.StatusCancelledByDoctor
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(appt, nil).Once()

	_, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "")

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.ledger.AssertNotCalled(suite.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_MissingRefundPolicyIsInternalError() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, false)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByPatient, "patient-1", suite.now)
	suite.settingsRepo.On("GetSetting", ctx, services.PatientRefundPercentageKey).Return("", apperrors.ErrNotFound).Once()

	_, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "")

	suite.Require().Error(err)
	suite.False(errors.Is(err, apperrors.ErrNotFound))
	suite.Equal(http.StatusInternalServerError, apperrors.Classify(err).Status)
	suite.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_UnpaidAppointmentHasNoRefund() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, true)
	appt := suite.appointment()
	appt.PaymentStatus = domain.PaymentUnpaid
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(appt, nil).Once()
	suite.expectTransition(ctx, tx, domain.StatusCancelledByPatient, "patient-1", suite.now)

	got, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-1", "")

	suite.Require().NoError(err)
	suite.Equal(domain.RefundNotApplicable, got.RefundStatus)
	suite.appointmentRepo.AssertNotCalled(suite.T(), "UpdateAppointmentRefundInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CancellationServiceTestSuite) TestCancel_StrangerForbidden() {
	ctx := context.Background()
	tx := expectTx(suite.txManager, false)
	suite.appointmentRepo.On("FindAppointmentByIDForUpdate", ctx, tx, "appt-1").Return(suite.appointment(), nil).Once()

	_, err := suite.service.Cancel(ctx, "appt-1", domain.RolePatient, "patient-2", "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestCancellationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CancellationServiceTestSuite))
}
