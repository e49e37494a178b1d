package repositories

import (
	"context"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AvailabilityReader loads everything the availability calculation needs.
// Busy intervals come from appointments that still hold their slot and
// overlap [from, to).
type AvailabilityReader interface {
	LoadSchedule(ctx context.Context, doctorID string, from, to time.Time) (*domain.Schedule, error)

	// LoadScheduleInTx is LoadSchedule reading through tx, so it sees the
	// booking transaction's own writes and locks.
	LoadScheduleInTx(ctx context.Context, tx pgx.Tx, doctorID string, from, to time.Time) (*domain.Schedule, error)
}
