package services

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/jackc/pgx/v5"
)

// AppointmentReaderSvc reads appointments on behalf of an actor. Patients and
// doctors only see their own appointments.
type AppointmentReaderSvc interface {
	GetAppointment(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) (*domain.Appointment, error)
	GetHistory(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) ([]domain.AppointmentStatusEvent, error)
}

// AppointmentTransitionSvc drives the appointment state machine.
type AppointmentTransitionSvc interface {
	// Transition moves an appointment to a non-cancellation status and
	// records exactly one status event.
	Transition(ctx context.Context, appointmentID string, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) (*domain.Appointment, error)

	// TransitionInTx applies a checked transition to an appointment already
	// locked in tx, updating appt in place.
	TransitionInTx(ctx context.Context, tx pgx.Tx, appt *domain.Appointment, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) error
}

// AppointmentSvcFacade combines all appointment-related service interfaces
type AppointmentSvcFacade interface {
	AppointmentReaderSvc
	AppointmentTransitionSvc
}

// BookingSvc reserves a slot and takes payment atomically.
type BookingSvc interface {
	Book(ctx context.Context, patientID string, req dto.BookAppointmentRequest) (*domain.Appointment, error)
}

// CancellationSvc cancels appointments and refunds paid ones.
type CancellationSvc interface {
	Cancel(ctx context.Context, appointmentID string, role domain.ActorRole, actorID, reason string) (*domain.Appointment, error)
}

// DoctorStatsSvc rebuilds the denormalized doctor counters.
type DoctorStatsSvc interface {
	RecomputeDoctorStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error)

	// RecomputeAll refreshes every active doctor and returns how many were updated.
	RecomputeAll(ctx context.Context) (int, error)
}
