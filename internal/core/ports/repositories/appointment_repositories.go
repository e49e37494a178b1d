package repositories

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AppointmentReader defines read operations for appointment data
type AppointmentReader interface {
	FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error)

	// ListStatusEvents returns the appointment's audit trail, oldest first.
	ListStatusEvents(ctx context.Context, appointmentID string) ([]domain.AppointmentStatusEvent, error)
}

// AppointmentWriter defines write operations for appointment data. All writes
// run inside a caller-owned transaction.
type AppointmentWriter interface {
	// FindAppointmentByIDForUpdate locks the appointment row for the rest of tx.
	FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error)

	// CreateAppointmentInTx inserts a new appointment. An overlapping
	// slot-holding appointment for the same doctor yields apperrors.ErrSlotUnavailable.
	CreateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error

	// UpdateAppointmentStatusInTx moves the appointment from → to. It affects
	// no row, and returns apperrors.ErrInvalidTransition, when the stored
	// status is no longer from.
	UpdateAppointmentStatusInTx(ctx context.Context, tx pgx.Tx, appointmentID string, from, to domain.AppointmentStatus, updatedBy string, updatedAt time.Time) error

	// UpdateAppointmentRefundInTx records the outcome of refund processing.
	UpdateAppointmentRefundInTx(ctx context.Context, tx pgx.Tx, appointmentID string, amount decimal.Decimal, status domain.RefundStatus, processedAt time.Time, updatedBy string) error

	// InsertStatusEventInTx appends one audit row. Events are never updated.
	InsertStatusEventInTx(ctx context.Context, tx pgx.Tx, event domain.AppointmentStatusEvent) error
}

// AppointmentRepositoryFacade combines all appointment-related repository interfaces
type AppointmentRepositoryFacade interface {
	AppointmentReader
	AppointmentWriter
}
