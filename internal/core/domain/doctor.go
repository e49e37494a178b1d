package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Doctor is the clinical roster's view of a doctor, as far as booking cares.
// The roster owns it; this core only reads it and recomputes DoctorStats.
type Doctor struct {
	DoctorID                string          `json:"doctorID"`
	UserID                  string          `json:"userID"`
	ConsultationFee         decimal.Decimal `json:"consultationFee"`
	IsVerified              bool            `json:"isVerified"`
	IsAcceptingAppointments bool            `json:"isAcceptingAppointments"`
	BannedFrom              *time.Time      `json:"bannedFrom,omitempty"`
	BannedUntil             *time.Time      `json:"bannedUntil,omitempty"`
	TotalCaseMissPerWeek    int             `json:"totalCaseMissPerWeek"`
	ArchivedAt              *time.Time      `json:"archivedAt,omitempty"`
}

// CanAcceptAt is the single eligibility predicate for new bookings.
// A doctor takes bookings when verified, opted in, not archived and not
// inside a ban window at now.
func (d Doctor) CanAcceptAt(now time.Time) bool {
	if !d.IsVerified || !d.IsAcceptingAppointments || d.ArchivedAt != nil {
		return false
	}
	return !d.bannedAt(now)
}

// bannedAt reports whether now falls in [BannedFrom, BannedUntil). A missing
// BannedUntil means the ban holds until lifted; a missing BannedFrom means it
// is already in force.
func (d Doctor) bannedAt(now time.Time) bool {
	if d.BannedFrom == nil && d.BannedUntil == nil {
		return false
	}
	if d.BannedFrom != nil && now.Before(*d.BannedFrom) {
		return false
	}
	return d.BannedUntil == nil || now.Before(*d.BannedUntil)
}

// DoctorStats is a materialized view over a doctor's appointments. It is only
// ever written by the explicit recompute step.
type DoctorStats struct {
	DoctorID        string    `json:"doctorID"`
	CompletedCount  int       `json:"completedCount"`
	CancelledCount  int       `json:"cancelledCount"`
	MissedByDoctor  int       `json:"missedByDoctor"`
	MissedByPatient int       `json:"missedByPatient"`
	NoShowCount     int       `json:"noShowCount"`
	UpcomingCount   int       `json:"upcomingCount"`
	RecomputedAt    time.Time `json:"recomputedAt"`
}
