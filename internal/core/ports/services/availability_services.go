package services

import (
	"context"
	"iter"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
)

// AvailabilitySvc computes a doctor's bookable time.
type AvailabilitySvc interface {
	// OpenSlots returns the open intervals within [from, to), ordered by
	// start. The sequence is computed lazily from a snapshot loaded by this
	// call and may be ranged over any number of times. It is empty when the
	// doctor is not accepting bookings.
	OpenSlots(ctx context.Context, doctorID string, from, to time.Time) (iter.Seq[domain.Interval], error)
}
