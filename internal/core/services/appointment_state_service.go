package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// appointmentService is the only writer of appointment status.
type appointmentService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	appointmentRepo portsrepo.AppointmentRepositoryFacade
	doctorRepo      portsrepo.DoctorReader
}

// NewAppointmentService creates the appointment state machine service.
func NewAppointmentService(txManager portsrepo.TransactionManager, appointmentRepo portsrepo.AppointmentRepositoryFacade, doctorRepo portsrepo.DoctorReader, options ...ServiceOption) portssvc.AppointmentSvcFacade {
	return &appointmentService{
		BaseService:     newBaseService(options),
		txManager:       txManager,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

var _ portssvc.AppointmentSvcFacade = (*appointmentService)(nil)

// authorizeAppointmentAccess checks that actorID may act on appt in role.
func authorizeAppointmentAccess(ctx context.Context, doctorRepo portsrepo.DoctorReader, appt *domain.Appointment, actorID string, role domain.ActorRole) error {
	switch role {
	case domain.RoleAdmin, domain.RoleSystem:
		return nil
	case domain.RolePatient:
		if appt.PatientID == actorID {
			return nil
		}
	case domain.RoleDoctor:
		doctor, err := doctorRepo.FindDoctorByID(ctx, appt.DoctorID)
		if err != nil {
			return err
		}
		if doctor.UserID == actorID {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	return fmt.Errorf("%w: appointment %s does not belong to caller", apperrors.ErrForbidden, appt.AppointmentID)
}

func (s *appointmentService) GetAppointment(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorizeAppointmentAccess(ctx, s.doctorRepo, appt, actorID, role); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) GetHistory(ctx context.Context, appointmentID, actorID string, role domain.ActorRole) ([]domain.AppointmentStatusEvent, error) {
	if _, err := s.GetAppointment(ctx, appointmentID, actorID, role); err != nil {
		return nil, err
	}
	return s.appointmentRepo.ListStatusEvents(ctx, appointmentID)
}

func (s *appointmentService) Transition(ctx context.Context, appointmentID string, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) (*domain.Appointment, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, to)
	}
	if to == domain.StatusCancelledByPatient || to == domain.StatusCancelledByDoctor {
		return nil, fmt.Errorf("%w: cancellations go through the cancel operation", apperrors.ErrValidation)
	}

	var appt *domain.Appointment
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		appt, err = s.appointmentRepo.FindAppointmentByIDForUpdate(ctx, tx, appointmentID)
		if err != nil {
			return err
		}
		if err := authorizeAppointmentAccess(ctx, s.doctorRepo, appt, changedBy, role); err != nil {
			return err
		}
		return s.TransitionInTx(ctx, tx, appt, to, changedBy, role, reason)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) TransitionInTx(ctx context.Context, tx pgx.Tx, appt *domain.Appointment, to domain.AppointmentStatus, changedBy string, role domain.ActorRole, reason string) error {
	from := appt.Status
	if !domain.CanTransition(from, to, role) {
		return fmt.Errorf("%w: %s cannot move appointment from %s to %s", apperrors.ErrInvalidTransition, role, from, to)
	}

	now := s.Now()
	if err := s.appointmentRepo.UpdateAppointmentStatusInTx(ctx, tx, appt.AppointmentID, from, to, changedBy, now); err != nil {
		return err
	}

	event := domain.AppointmentStatusEvent{
		EventID:       uuid.NewString(),
		AppointmentID: appt.AppointmentID,
		OldStatus:     &from,
		NewStatus:     to,
		ChangedBy:     changedBy,
		ActorRole:     role,
		Reason:        reason,
		CreatedAt:     now,
	}
	if err := s.appointmentRepo.InsertStatusEventInTx(ctx, tx, event); err != nil {
		return err
	}

	appt.Status = to
	appt.LastUpdatedAt = now
	appt.LastUpdatedBy = changedBy

	s.LogInfo(ctx, "Appointment status changed",
		slog.String("appointment_id", appt.AppointmentID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("role", string(role)))
	return nil
}
