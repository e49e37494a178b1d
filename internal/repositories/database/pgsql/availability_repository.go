package pgsql

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/dteedee/MEDIX-sub004/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxAvailabilityRepository struct {
	BaseRepository
	location *time.Location
}

// newPgxAvailabilityRepository builds schedule snapshots whose calendar days
// are interpreted in location.
func newPgxAvailabilityRepository(pool *pgxpool.Pool, location *time.Location) portsrepo.AvailabilityReader {
	if location == nil {
		location = time.UTC
	}
	return &PgxAvailabilityRepository{
		BaseRepository: BaseRepository{Pool: pool},
		location:       location,
	}
}

var _ portsrepo.AvailabilityReader = (*PgxAvailabilityRepository)(nil)

// LoadSchedule reads the weekly template, the overrides dated inside
// [from, to) and the slot-holding appointments overlapping it.
func (r *PgxAvailabilityRepository) LoadSchedule(ctx context.Context, doctorID string, from, to time.Time) (*domain.Schedule, error) {
	return r.load(ctx, r.Pool, doctorID, from, to)
}

// LoadScheduleInTx is LoadSchedule on the booking transaction, so the busy
// set reflects rows written by transactions that committed before our lock.
func (r *PgxAvailabilityRepository) LoadScheduleInTx(ctx context.Context, tx pgx.Tx, doctorID string, from, to time.Time) (*domain.Schedule, error) {
	return r.load(ctx, tx, doctorID, from, to)
}

func (r *PgxAvailabilityRepository) load(ctx context.Context, q querier, doctorID string, from, to time.Time) (*domain.Schedule, error) {
	weeklyRows, err := q.Query(ctx, `
		SELECT schedule_id, doctor_id, day_of_week, start_time, end_time, is_available
		FROM doctor_schedules
		WHERE doctor_id = $1
		ORDER BY day_of_week, start_time;
	`, doctorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedules for doctor "+doctorID, err)
	}
	weekly, err := pgx.CollectRows(weeklyRows, pgx.RowToStructByName[models.WeeklyAvailability])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan schedules for doctor "+doctorID, err)
	}

	firstDay := domain.StartOfDay(from, r.location)
	lastDay := domain.StartOfDay(to, r.location)
	overrideRows, err := q.Query(ctx, `
		SELECT override_id, doctor_id, override_date, start_time, end_time, is_available, reason
		FROM doctor_schedule_overrides
		WHERE doctor_id = $1 AND override_date BETWEEN $2::date AND $3::date
		ORDER BY override_date, start_time;
	`, doctorID, firstDay.Format(time.DateOnly), lastDay.Format(time.DateOnly))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overrides for doctor "+doctorID, err)
	}
	overrides, err := pgx.CollectRows(overrideRows, pgx.RowToStructByName[models.AvailabilityOverride])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan overrides for doctor "+doctorID, err)
	}

	busyRows, err := q.Query(ctx, `
		SELECT start_time, end_time
		FROM appointments
		WHERE doctor_id = $1
		  AND status NOT IN ('CANCELLED_BY_PATIENT', 'CANCELLED_BY_DOCTOR', 'NO_SHOW')
		  AND tstzrange(start_time, end_time, '[)') && tstzrange($2, $3, '[)')
		ORDER BY start_time;
	`, doctorID, firstDay, lastDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query appointments for doctor "+doctorID, err)
	}
	busy, err := pgx.CollectRows(busyRows, func(row pgx.CollectableRow) (domain.Interval, error) {
		var iv domain.Interval
		err := row.Scan(&iv.Start, &iv.End)
		return iv, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan appointments for doctor "+doctorID, err)
	}

	schedule := &domain.Schedule{
		Weekly:    make([]domain.WeeklyAvailability, 0, len(weekly)),
		Overrides: make([]domain.AvailabilityOverride, 0, len(overrides)),
		Busy:      busy,
		Location:  r.location,
	}
	for _, w := range weekly {
		schedule.Weekly = append(schedule.Weekly, mapping.ToDomainWeeklyAvailability(w))
	}
	for _, o := range overrides {
		schedule.Overrides = append(schedule.Overrides, mapping.ToDomainAvailabilityOverride(o, r.location))
	}
	return schedule, nil
}
