package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const doctorColumns = `doctor_id, user_id, consultation_fee, is_verified, is_accepting_appointments,
	banned_from, banned_until, total_case_miss_per_week, archived_at`

type PgxDoctorRepository struct {
	BaseRepository
}

func newPgxDoctorRepository(pool *pgxpool.Pool) portsrepo.DoctorRepositoryFacade {
	return &PgxDoctorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DoctorRepositoryFacade = (*PgxDoctorRepository)(nil)

func (r *PgxDoctorRepository) scanDoctor(row pgx.Row, doctorID string) (*domain.Doctor, error) {
	var m models.Doctor
	err := row.Scan(
		&m.DoctorID,
		&m.UserID,
		&m.ConsultationFee,
		&m.IsVerified,
		&m.IsAcceptingAppointments,
		&m.BannedFrom,
		&m.BannedUntil,
		&m.TotalCaseMissPerWeek,
		&m.ArchivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find doctor "+doctorID, err)
	}
	doctor := mapping.ToDomainDoctor(m)
	return &doctor, nil
}

// FindDoctorByID retrieves a doctor by its ID.
func (r *PgxDoctorRepository) FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE doctor_id = $1;`
	return r.scanDoctor(r.Pool.QueryRow(ctx, query, doctorID), doctorID)
}

// FindDoctorByIDForUpdate locks the doctor row for the rest of tx. Concurrent
// bookings for the same doctor queue up here.
func (r *PgxDoctorRepository) FindDoctorByIDForUpdate(ctx context.Context, tx pgx.Tx, doctorID string) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE doctor_id = $1 FOR UPDATE;`
	return r.scanDoctor(tx.QueryRow(ctx, query, doctorID), doctorID)
}

// ListActiveDoctorIDs returns every doctor that has not been archived.
func (r *PgxDoctorRepository) ListActiveDoctorIDs(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT doctor_id FROM doctors WHERE archived_at IS NULL ORDER BY doctor_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list doctors", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan doctor ids", err)
	}
	return ids, nil
}

// ComputeDoctorStats counts a doctor's appointments by outcome.
func (r *PgxDoctorRepository) ComputeDoctorStats(ctx context.Context, doctorID string, now time.Time) (*domain.DoctorStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'COMPLETED'),
			COUNT(*) FILTER (WHERE status IN ('CANCELLED_BY_PATIENT', 'CANCELLED_BY_DOCTOR')),
			COUNT(*) FILTER (WHERE status = 'MISSED_BY_DOCTOR'),
			COUNT(*) FILTER (WHERE status = 'MISSED_BY_PATIENT'),
			COUNT(*) FILTER (WHERE status = 'NO_SHOW'),
			COUNT(*) FILTER (WHERE status IN ('PENDING_CONFIRMATION', 'CONFIRMED', 'BEFORE_APPOINTMENT') AND start_time > $2)
		FROM appointments
		WHERE doctor_id = $1;
	`
	stats := models.DoctorStats{DoctorID: doctorID, RecomputedAt: now}
	err := r.Pool.QueryRow(ctx, query, doctorID, now).Scan(
		&stats.CompletedCount,
		&stats.CancelledCount,
		&stats.MissedByDoctor,
		&stats.MissedByPatient,
		&stats.NoShowCount,
		&stats.UpcomingCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute stats for doctor "+doctorID, err)
	}
	result := domain.DoctorStats(stats)
	return &result, nil
}

// SaveDoctorStats upserts the materialized counters.
func (r *PgxDoctorRepository) SaveDoctorStats(ctx context.Context, stats domain.DoctorStats) error {
	m := mapping.ToModelDoctorStats(stats)
	query := `
		INSERT INTO doctor_stats (doctor_id, completed_count, cancelled_count, missed_by_doctor, missed_by_patient, no_show_count, upcoming_count, recomputed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (doctor_id) DO UPDATE SET
			completed_count = EXCLUDED.completed_count,
			cancelled_count = EXCLUDED.cancelled_count,
			missed_by_doctor = EXCLUDED.missed_by_doctor,
			missed_by_patient = EXCLUDED.missed_by_patient,
			no_show_count = EXCLUDED.no_show_count,
			upcoming_count = EXCLUDED.upcoming_count,
			recomputed_at = EXCLUDED.recomputed_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DoctorID,
		m.CompletedCount,
		m.CancelledCount,
		m.MissedByDoctor,
		m.MissedByPatient,
		m.NoShowCount,
		m.UpcomingCount,
		m.RecomputedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save stats for doctor "+stats.DoctorID, err)
	}
	return nil
}
