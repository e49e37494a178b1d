package services

import (
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/platform/config"
)

// Collaborators are the external systems the core talks to.
type Collaborators struct {
	Locker  portssvc.Locker
	Gateway portssvc.PaymentGateway
	Bank    portssvc.BankTransfer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, ext Collaborators, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger is the only writer of balances; everything that moves money goes through it.
	container.Ledger = NewLedgerService(repos.TxManager, repos.WalletRepo, cfg.WalletCurrency, options...)

	container.Availability = NewAvailabilityService(repos.DoctorRepo, repos.AvailabilityRepo, cfg.MaxAvailabilityRange, options...)
	container.Appointment = NewAppointmentService(repos.TxManager, repos.AppointmentRepo, repos.DoctorRepo, options...)

	container.Booking = NewBookingService(BookingDeps{
		TxManager:        repos.TxManager,
		DoctorRepo:       repos.DoctorRepo,
		AvailabilityRepo: repos.AvailabilityRepo,
		AppointmentRepo:  repos.AppointmentRepo,
		WalletRepo:       repos.WalletRepo,
		PromotionRepo:    repos.PromotionRepo,
		Ledger:           container.Ledger,
		Locker:           ext.Locker,
	}, cfg.PlatformFee, cfg.ClinicTimezone, options...)

	container.Cancellation = NewCancellationService(CancellationDeps{
		TxManager:       repos.TxManager,
		AppointmentRepo: repos.AppointmentRepo,
		DoctorRepo:      repos.DoctorRepo,
		WalletRepo:      repos.WalletRepo,
		SettingsRepo:    repos.SettingsRepo,
		StateMachine:    container.Appointment,
		Ledger:          container.Ledger,
	}, cfg.CancellationCutoff, options...)

	container.Withdrawal = NewWithdrawalService(WithdrawalDeps{
		TxManager:      repos.TxManager,
		WalletRepo:     repos.WalletRepo,
		WithdrawalRepo: repos.WithdrawalRepo,
		Ledger:         container.Ledger,
		Bank:           ext.Bank,
	}, cfg.MinWithdrawalAmount, options...)

	container.TopUp = NewTopUpService(repos.TxManager, repos.PaymentRepo, container.Ledger, ext.Gateway, options...)
	container.DoctorStats = NewDoctorStatsService(repos.DoctorRepo, options...)

	return container
}
