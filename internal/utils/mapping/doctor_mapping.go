package mapping

import (
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// ToDomainDoctor converts a model Doctor to a domain Doctor
func ToDomainDoctor(m models.Doctor) domain.Doctor {
	return domain.Doctor{
		DoctorID:                m.DoctorID,
		UserID:                  m.UserID,
		ConsultationFee:         m.ConsultationFee,
		IsVerified:              m.IsVerified,
		IsAcceptingAppointments: m.IsAcceptingAppointments,
		BannedFrom:              m.BannedFrom,
		BannedUntil:             m.BannedUntil,
		TotalCaseMissPerWeek:    m.TotalCaseMissPerWeek,
		ArchivedAt:              m.ArchivedAt,
	}
}

// ToModelDoctorStats converts domain DoctorStats to the stats row
func ToModelDoctorStats(d domain.DoctorStats) models.DoctorStats {
	return models.DoctorStats(d)
}

// ToDomainTimeOfDay converts a Postgres time value to a TimeOfDay
func ToDomainTimeOfDay(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(time.Duration(t.Microseconds) * time.Microsecond)
}

// ToModelTimeOfDay converts a TimeOfDay to a Postgres time value
func ToModelTimeOfDay(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: time.Duration(t).Microseconds(), Valid: true}
}

// ToDomainWeeklyAvailability converts a schedule row to its domain form
func ToDomainWeeklyAvailability(m models.WeeklyAvailability) domain.WeeklyAvailability {
	return domain.WeeklyAvailability{
		ID:          m.ScheduleID,
		DoctorID:    m.DoctorID,
		DayOfWeek:   time.Weekday(m.DayOfWeek),
		StartTime:   ToDomainTimeOfDay(m.StartTime),
		EndTime:     ToDomainTimeOfDay(m.EndTime),
		IsAvailable: m.IsAvailable,
	}
}

// ToDomainAvailabilityOverride converts an override row to its domain form.
// The stored date has no zone; it is re-anchored in loc so that it matches
// the calendar days the availability calculation walks.
func ToDomainAvailabilityOverride(m models.AvailabilityOverride, loc *time.Location) domain.AvailabilityOverride {
	y, mo, d := m.OverrideDate.Date()
	return domain.AvailabilityOverride{
		ID:          m.OverrideID,
		DoctorID:    m.DoctorID,
		Date:        time.Date(y, mo, d, 0, 0, 0, 0, loc),
		StartTime:   ToDomainTimeOfDay(m.StartTime),
		EndTime:     ToDomainTimeOfDay(m.EndTime),
		IsAvailable: m.IsAvailable,
		Reason:      derefString(m.Reason),
	}
}
