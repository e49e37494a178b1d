package services

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
)

type availabilityService struct {
	BaseService
	doctorRepo       portsrepo.DoctorReader
	availabilityRepo portsrepo.AvailabilityReader
	maxRange         time.Duration
}

// NewAvailabilityService creates the availability calculator. Queries wider
// than maxRange are rejected.
func NewAvailabilityService(doctorRepo portsrepo.DoctorReader, availabilityRepo portsrepo.AvailabilityReader, maxRange time.Duration, options ...ServiceOption) portssvc.AvailabilitySvc {
	return &availabilityService{
		BaseService:      newBaseService(options),
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
		maxRange:         maxRange,
	}
}

var _ portssvc.AvailabilitySvc = (*availabilityService)(nil)

func emptySeq(func(domain.Interval) bool) {}

func (s *availabilityService) OpenSlots(ctx context.Context, doctorID string, from, to time.Time) (iter.Seq[domain.Interval], error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: 'from' must be before 'to'", apperrors.ErrValidation)
	}
	if s.maxRange > 0 && to.Sub(from) > s.maxRange {
		return nil, fmt.Errorf("%w: range exceeds %s", apperrors.ErrValidation, s.maxRange)
	}

	doctor, err := s.doctorRepo.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.CanAcceptAt(s.Now()) {
		s.LogDebug(ctx, "Doctor not accepting bookings, no availability", slog.String("doctor_id", doctorID))
		return emptySeq, nil
	}

	schedule, err := s.availabilityRepo.LoadSchedule(ctx, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	return schedule.OpenBetween(from, to), nil
}
