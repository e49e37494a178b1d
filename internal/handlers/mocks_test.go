package handlers_test

import (
	"context"
	"iter"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AvailabilityService ---
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) OpenSlots(ctx context.Context, doctorID string, from, to time.Time) (iter.Seq[domain.Interval], error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[domain.Interval]), args.Error(1)
}

var _ portssvc.AvailabilitySvc = (*MockAvailabilityService)(nil)

// --- Mock AppointmentService ---
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) GetAppointment(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID, actorID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) GetHistory(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) ([]domain.AppointmentStatusEvent, error) {
	args := m.Called(ctx, appointmentID, actorID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AppointmentStatusEvent), args.Error(1)
}

func (m *MockAppointmentService) Transition(ctx context.Context, appointmentID string, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID, to, changedBy, role, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) TransitionInTx(ctx context.Context, tx pgx.Tx, appt *domain.Appointment, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) error {
	return m.Called(ctx, tx, appt, to, changedBy, role, reason).Error(0)
}

var _ portssvc.AppointmentSvcFacade = (*MockAppointmentService)(nil)

// --- Mock BookingService ---
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, patientID string, req dto.BookAppointmentRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, patientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

var _ portssvc.BookingSvc = (*MockBookingService)(nil)

// --- Mock CancellationService ---
type MockCancellationService struct {
	mock.Mock
}

func (m *MockCancellationService) Cancel(ctx context.Context, appointmentID string, role domain.ActorRole, actorID, reason string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID, role, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

var _ portssvc.CancellationSvc = (*MockCancellationService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Append(ctx context.Context, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AppendInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, posting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, ownerID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) EnsureWallet(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerService) VerifyChain(ctx context.Context, walletID string) error {
	return m.Called(ctx, walletID).Error(0)
}

func (m *MockLedgerService) VerifyAllChains(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock WithdrawalService ---
type MockWithdrawalService struct {
	mock.Mock
}

func (m *MockWithdrawalService) RequestWithdrawal(ctx context.Context, ownerID string, req dto.CreateWithdrawalRequest) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalService) Resolve(ctx context.Context, requestID string, decision domain.WithdrawalDecision, approverID, note string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, decision, approverID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalService) ConfirmTransfer(ctx context.Context, requestID string, success bool, transferRef, note, actorID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID, success, transferRef, note, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

var _ portssvc.WithdrawalSvcFacade = (*MockWithdrawalService)(nil)

// --- Mock TopUpService ---
type MockTopUpService struct {
	mock.Mock
}

func (m *MockTopUpService) CreateOrder(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, ownerID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockTopUpService) HandleCallback(ctx context.Context, req dto.PaymentCallbackRequest) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

var _ portssvc.TopUpSvc = (*MockTopUpService)(nil)

// --- Mock DoctorStatsService ---
type MockDoctorStatsService struct {
	mock.Mock
}

func (m *MockDoctorStatsService) RecomputeDoctorStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorStats), args.Error(1)
}

func (m *MockDoctorStatsService) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portssvc.DoctorStatsSvc = (*MockDoctorStatsService)(nil)
