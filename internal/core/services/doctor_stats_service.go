package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
)

type doctorStatsService struct {
	BaseService
	doctorRepo portsrepo.DoctorRepositoryFacade
}

// NewDoctorStatsService creates the explicit recompute step for doctor_stats.
func NewDoctorStatsService(doctorRepo portsrepo.DoctorRepositoryFacade, options ...ServiceOption) portssvc.DoctorStatsSvc {
	return &doctorStatsService{
		BaseService: newBaseService(options),
		doctorRepo:  doctorRepo,
	}
}

var _ portssvc.DoctorStatsSvc = (*doctorStatsService)(nil)

func (s *doctorStatsService) RecomputeDoctorStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error) {
	if _, err := s.doctorRepo.FindDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}
	stats, err := s.doctorRepo.ComputeDoctorStats(ctx, doctorID, s.Now())
	if err != nil {
		return nil, err
	}
	if err := s.doctorRepo.SaveDoctorStats(ctx, *stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecomputeAll keeps going past individual failures and reports them joined.
func (s *doctorStatsService) RecomputeAll(ctx context.Context) (int, error) {
	doctorIDs, err := s.doctorRepo.ListActiveDoctorIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	var errs []error
	for _, doctorID := range doctorIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.RecomputeDoctorStats(ctx, doctorID); err != nil {
			s.LogError(ctx, err, "Doctor stats recompute failed", slog.String("doctor_id", doctorID))
			errs = append(errs, err)
			continue
		}
		updated++
	}
	s.LogInfo(ctx, "Doctor stats recomputed", slog.Int("updated", updated), slog.Int("total", len(doctorIDs)))
	return updated, errors.Join(errs...)
}
