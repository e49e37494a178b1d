package services_test

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a live transaction; services only pass it through.
type fakeTx struct {
	pgx.Tx
}

// --- TransactionManager ---

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx wires a Begin/Rollback pair and returns the tx handed out.
func expectTx(m *MockTxManager, commit bool) pgx.Tx {
	tx := &fakeTx{}
	m.On("Begin", mock.Anything).Return(tx, nil)
	m.On("Rollback", mock.Anything, tx).Return(nil).Maybe()
	if commit {
		m.On("Commit", mock.Anything, tx).Return(nil).Once()
	}
	return tx
}

// --- DoctorRepositoryFacade ---

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindDoctorByIDForUpdate(ctx context.Context, tx pgx.Tx, doctorID string) (*domain.Doctor, error) {
	args := m.Called(ctx, tx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) ListActiveDoctorIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDoctorRepository) ComputeDoctorStats(ctx context.Context, doctorID string, now time.Time) (*domain.DoctorStats, error) {
	args := m.Called(ctx, doctorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorStats), args.Error(1)
}

func (m *MockDoctorRepository) SaveDoctorStats(ctx context.Context, stats domain.DoctorStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

// --- AvailabilityReader ---

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) LoadSchedule(ctx context.Context, doctorID string, from, to time.Time) (*domain.Schedule, error) {
	args := m.Called(ctx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockAvailabilityRepository) LoadScheduleInTx(ctx context.Context, tx pgx.Tx, doctorID string, from, to time.Time) (*domain.Schedule, error) {
	args := m.Called(ctx, tx, doctorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

// --- AppointmentRepositoryFacade ---

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListStatusEvents(ctx context.Context, appointmentID string) ([]domain.AppointmentStatusEvent, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AppointmentStatusEvent), args.Error(1)
}

func (m *MockAppointmentRepository) FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, tx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CreateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error {
	args := m.Called(ctx, tx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateAppointmentStatusInTx(ctx context.Context, tx pgx.Tx, appointmentID string, from, to domain.AppointmentStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, appointmentID, from, to, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateAppointmentRefundInTx(ctx context.Context, tx pgx.Tx, appointmentID string, amount decimal.Decimal, status domain.RefundStatus, processedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, tx, appointmentID, amount, status, processedAt, updatedBy)
	return args.Error(0)
}

func (m *MockAppointmentRepository) InsertStatusEventInTx(ctx context.Context, tx pgx.Tx, event domain.AppointmentStatusEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

// --- WalletRepositoryFacade ---

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByOwnerID(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWalletRepository) FindLedgerEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) ListLedgerEntries(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, walletID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockWalletRepository) ListAllLedgerEntriesInTx(ctx context.Context, tx pgx.Tx, walletID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, wallet domain.Wallet) (*domain.Wallet, error) {
	args := m.Called(ctx, wallet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, tx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) InsertLedgerEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletBalanceInTx(ctx context.Context, tx pgx.Tx, walletID string, balance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, walletID, balance, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateLedgerEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.LedgerEntryStatus) error {
	args := m.Called(ctx, tx, entryID, from, to)
	return args.Error(0)
}

// --- WithdrawalRepositoryFacade ---

type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindWithdrawalByID(ctx context.Context, requestID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) FindWithdrawalByIDForUpdate(ctx context.Context, tx pgx.Tx, requestID string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}

func (m *MockWithdrawalRepository) CreateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) UpdateWithdrawalInTx(ctx context.Context, tx pgx.Tx, request domain.WithdrawalRequest) error {
	args := m.Called(ctx, tx, request)
	return args.Error(0)
}

// --- PaymentOrderRepositoryFacade ---

type MockPaymentOrderRepository struct {
	mock.Mock
}

func (m *MockPaymentOrderRepository) CreatePaymentOrder(ctx context.Context, order domain.PaymentOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPaymentOrderRepository) FindPaymentOrderByCodeForUpdate(ctx context.Context, tx pgx.Tx, orderCode int64) (*domain.PaymentOrder, error) {
	args := m.Called(ctx, tx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOrder), args.Error(1)
}

func (m *MockPaymentOrderRepository) UpdatePaymentOrderInTx(ctx context.Context, tx pgx.Tx, order domain.PaymentOrder) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

// --- PromotionRepositoryFacade ---

type MockPromotionRepository struct {
	mock.Mock
}

func (m *MockPromotionRepository) FindPromotionByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promotion), args.Error(1)
}

func (m *MockPromotionRepository) RedeemPromotionInTx(ctx context.Context, tx pgx.Tx, code string) error {
	args := m.Called(ctx, tx, code)
	return args.Error(0)
}

// --- SettingsReader ---

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// --- LedgerSvcFacade ---

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
	args := m.Called(ctx, walletID)
	return args.Error(0)
}

func (m *MockLedgerService) VerifyAllChains(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- External collaborators ---

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckout(ctx context.Context, req portssvc.CheckoutRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) VerifyCallback(data dto.PaymentCallbackData, signature string) bool {
	args := m.Called(data, signature)
	return args.Bool(0)
}

type MockBankTransfer struct {
	mock.Mock
}

func (m *MockBankTransfer) RequestPayout(ctx context.Context, request domain.WithdrawalRequest) (string, error) {
	args := m.Called(ctx, request)
	return args.String(0), args.Error(1)
}

// inlineLocker runs fn directly and remembers the keys it was asked for.
type inlineLocker struct {
	keys []string
	err  error
}

func (l *inlineLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.keys = append(l.keys, key)
	if l.err != nil {
		return l.err
	}
	return fn(ctx)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

// decEq matches a decimal argument by value rather than representation.
func decEq(v int64) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(v)) })
}
