package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const appointmentColumns = `appointment_id, patient_id, doctor_id, start_time, end_time, status, payment_status,
	consultation_fee, platform_fee, discount_amount, total_amount, promotion_code,
	refund_amount, refund_status, refund_processed_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAppointmentRepository struct {
	BaseRepository
}

func newPgxAppointmentRepository(pool *pgxpool.Pool) portsrepo.AppointmentRepositoryFacade {
	return &PgxAppointmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AppointmentRepositoryFacade = (*PgxAppointmentRepository)(nil)

func (r *PgxAppointmentRepository) findOne(ctx context.Context, q querier, query, appointmentID string) (*domain.Appointment, error) {
	rows, err := q.Query(ctx, query, appointmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query appointment "+appointmentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Appointment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan appointment "+appointmentID, err)
	}
	appt := mapping.ToDomainAppointment(m)
	return &appt, nil
}

// FindAppointmentByID retrieves an appointment by its ID.
func (r *PgxAppointmentRepository) FindAppointmentByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_id = $1;`
	return r.findOne(ctx, r.Pool, query, appointmentID)
}

// FindAppointmentByIDForUpdate locks the appointment row for the rest of tx.
func (r *PgxAppointmentRepository) FindAppointmentByIDForUpdate(ctx context.Context, tx pgx.Tx, appointmentID string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_id = $1 FOR UPDATE;`
	return r.findOne(ctx, tx, query, appointmentID)
}

// ListStatusEvents returns the audit chain oldest first.
func (r *PgxAppointmentRepository) ListStatusEvents(ctx context.Context, appointmentID string) ([]domain.AppointmentStatusEvent, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT event_id, appointment_id, old_status, new_status, changed_by, actor_role, reason, created_at
		FROM appointment_status_events
		WHERE appointment_id = $1
		ORDER BY seq;
	`, appointmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status events for appointment "+appointmentID, err)
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AppointmentStatusEvent])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan status events for appointment "+appointmentID, err)
	}
	result := make([]domain.AppointmentStatusEvent, 0, len(events))
	for _, ev := range events {
		result = append(result, mapping.ToDomainStatusEvent(ev))
	}
	return result, nil
}

// CreateAppointmentInTx inserts the appointment. An overlap with another
// slot-holding appointment of the same doctor is rejected by the exclusion
// constraint and reported as ErrSlotUnavailable.
func (r *PgxAppointmentRepository) CreateAppointmentInTx(ctx context.Context, tx pgx.Tx, appointment domain.Appointment) error {
	m := mapping.ToModelAppointment(appointment)
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		m.AppointmentID,
		m.PatientID,
		m.DoctorID,
		m.StartTime,
		m.EndTime,
		m.Status,
		m.PaymentStatus,
		m.ConsultationFee,
		m.PlatformFee,
		m.DiscountAmount,
		m.TotalAmount,
		m.PromotionCode,
		m.RefundAmount,
		m.RefundStatus,
		m.RefundProcessedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgExclusionViolation:
			return fmt.Errorf("%w: doctor %s already has an appointment overlapping %s", apperrors.ErrSlotUnavailable, m.DoctorID, m.StartTime.Format(time.RFC3339))
		case pgUniqueViolation:
			return fmt.Errorf("%w: appointment %s already exists", apperrors.ErrDuplicate, m.AppointmentID)
		}
		return apperrors.NewAppError(500, "failed to insert appointment "+m.AppointmentID, err)
	}
	return nil
}

// UpdateAppointmentStatusInTx moves the status only if it is still from, so a
// concurrent change can never be overwritten.
func (r *PgxAppointmentRepository) UpdateAppointmentStatusInTx(ctx context.Context, tx pgx.Tx, appointmentID string, from, to domain.AppointmentStatus, updatedBy string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET status = $3, last_updated_by = $4, last_updated_at = $5
		WHERE appointment_id = $1 AND status = $2;
	`, appointmentID, string(from), string(to), updatedBy, updatedAt)
	if err != nil {
		if pgErrorCode(err) == pgExclusionViolation {
			return fmt.Errorf("%w: slot has been taken", apperrors.ErrSlotUnavailable)
		}
		return apperrors.NewAppError(500, "failed to update status of appointment "+appointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: appointment %s is no longer %s", apperrors.ErrInvalidTransition, appointmentID, from)
	}
	return nil
}

// UpdateAppointmentRefundInTx records the refund outcome of a cancellation.
func (r *PgxAppointmentRepository) UpdateAppointmentRefundInTx(ctx context.Context, tx pgx.Tx, appointmentID string, amount decimal.Decimal, status domain.RefundStatus, processedAt time.Time, updatedBy string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET refund_amount = $2, refund_status = $3, refund_processed_at = $4, last_updated_by = $5, last_updated_at = $4
		WHERE appointment_id = $1;
	`, appointmentID, amount, string(status), processedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record refund for appointment "+appointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertStatusEventInTx appends one row to the audit chain.
func (r *PgxAppointmentRepository) InsertStatusEventInTx(ctx context.Context, tx pgx.Tx, event domain.AppointmentStatusEvent) error {
	m := mapping.ToModelStatusEvent(event)
	_, err := tx.Exec(ctx, `
		INSERT INTO appointment_status_events (event_id, appointment_id, old_status, new_status, changed_by, actor_role, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		m.EventID,
		m.AppointmentID,
		m.OldStatus,
		m.NewStatus,
		m.ChangedBy,
		m.ActorRole,
		m.Reason,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert status event for appointment "+m.AppointmentID, err)
	}
	return nil
}
