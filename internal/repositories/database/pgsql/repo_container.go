package pgsql

import (
	"time"

	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository over one pool. location is the
// clinic time zone used to anchor weekly schedules.
func NewRepositoryProvider(dbPool *pgxpool.Pool, location *time.Location) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		DoctorRepo:       newPgxDoctorRepository(dbPool),
		AvailabilityRepo: newPgxAvailabilityRepository(dbPool, location),
		AppointmentRepo:  newPgxAppointmentRepository(dbPool),
		WalletRepo:       newPgxWalletRepository(dbPool),
		WithdrawalRepo:   newPgxWithdrawalRepository(dbPool),
		PaymentRepo:      newPgxPaymentOrderRepository(dbPool),
		PromotionRepo:    newPgxPromotionRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
	}
}
