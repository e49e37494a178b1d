package repositories

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DoctorReader defines read operations on the doctor roster.
type DoctorReader interface {
	// FindDoctorByID returns apperrors.ErrNotFound when the doctor does not exist.
	FindDoctorByID(ctx context.Context, doctorID string) (*domain.Doctor, error)

	// FindDoctorByIDForUpdate locks the doctor row for the rest of tx. Bookings
	// for the same doctor serialize on this lock.
	FindDoctorByIDForUpdate(ctx context.Context, tx pgx.Tx, doctorID string) (*domain.Doctor, error)

	// ListActiveDoctorIDs returns every non-archived doctor.
	ListActiveDoctorIDs(ctx context.Context) ([]string, error)
}

// DoctorStatsWriter maintains the doctor_stats materialized view.
type DoctorStatsWriter interface {
	// ComputeDoctorStats aggregates the doctor's appointments as of now.
	ComputeDoctorStats(ctx context.Context, doctorID string, now time.Time) (*domain.DoctorStats, error)

	// SaveDoctorStats replaces the stored stats row.
	SaveDoctorStats(ctx context.Context, stats domain.DoctorStats) error
}

// DoctorRepositoryFacade combines all doctor-related repository interfaces
type DoctorRepositoryFacade interface {
	DoctorReader
	DoctorStatsWriter
}
