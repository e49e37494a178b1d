package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Doctor is a row of the doctors table.
type Doctor struct {
	DoctorID                string          `db:"doctor_id"`
	UserID                  string          `db:"user_id"`
	ConsultationFee         decimal.Decimal `db:"consultation_fee"`
	IsVerified              bool            `db:"is_verified"`
	IsAcceptingAppointments bool            `db:"is_accepting_appointments"`
	BannedFrom              *time.Time      `db:"banned_from"`
	BannedUntil             *time.Time      `db:"banned_until"`
	TotalCaseMissPerWeek    int             `db:"total_case_miss_per_week"`
	ArchivedAt              *time.Time      `db:"archived_at"`
}

// DoctorStats is a row of the doctor_stats table.
type DoctorStats struct {
	DoctorID        string    `db:"doctor_id"`
	CompletedCount  int       `db:"completed_count"`
	CancelledCount  int       `db:"cancelled_count"`
	MissedByDoctor  int       `db:"missed_by_doctor"`
	MissedByPatient int       `db:"missed_by_patient"`
	NoShowCount     int       `db:"no_show_count"`
	UpcomingCount   int       `db:"upcoming_count"`
	RecomputedAt    time.Time `db:"recomputed_at"`
}

// WeeklyAvailability is a row of doctor_schedules.
type WeeklyAvailability struct {
	ScheduleID  string      `db:"schedule_id"`
	DoctorID    string      `db:"doctor_id"`
	DayOfWeek   int         `db:"day_of_week"`
	StartTime   pgtype.Time `db:"start_time"`
	EndTime     pgtype.Time `db:"end_time"`
	IsAvailable bool        `db:"is_available"`
}

// AvailabilityOverride is a row of doctor_schedule_overrides.
type AvailabilityOverride struct {
	OverrideID   string      `db:"override_id"`
	DoctorID     string      `db:"doctor_id"`
	OverrideDate time.Time   `db:"override_date"`
	StartTime    pgtype.Time `db:"start_time"`
	EndTime      pgtype.Time `db:"end_time"`
	IsAvailable  bool        `db:"is_available"`
	Reason       *string     `db:"reason"`
}
