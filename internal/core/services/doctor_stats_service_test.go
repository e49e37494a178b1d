package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorStats_RecomputeDoctorStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	repo := new(MockDoctorRepository)
	stats := &domain.DoctorStats{DoctorID: "doc-1", CompletedCount: 4, NoShowCount: 1, RecomputedAt: now}
	repo.On("FindDoctorByID", ctx, "doc-1").Return(&domain.Doctor{DoctorID: "doc-1"}, nil).Once()
	repo.On("ComputeDoctorStats", ctx, "doc-1", now).Return(stats, nil).Once()
	repo.On("SaveDoctorStats", ctx, *stats).Return(nil).Once()

	svc := services.NewDoctorStatsService(repo, services.WithClock(fixedClock(now)))
	got, err := svc.RecomputeDoctorStats(ctx, "doc-1")

	require.NoError(t, err)
	assert.Equal(t, stats, got)
	repo.AssertExpectations(t)
}

func TestDoctorStats_RecomputeAllContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	repo := new(MockDoctorRepository)
	repo.On("ListActiveDoctorIDs", ctx).Return([]string{"doc-1", "doc-2", "doc-3"}, nil).Once()
	repo.On("FindDoctorByID", ctx, "doc-1").Return(&domain.Doctor{DoctorID: "doc-1"}, nil).Once()
	repo.On("FindDoctorByID", ctx, "doc-2").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindDoctorByID", ctx, "doc-3").Return(&domain.Doctor{DoctorID: "doc-3"}, nil).Once()
	for _, id := range []string{"doc-1", "doc-3"} {
		stats := &domain.DoctorStats{DoctorID: id, RecomputedAt: now}
		repo.On("ComputeDoctorStats", ctx, id, now).Return(stats, nil).Once()
		repo.On("SaveDoctorStats", ctx, *stats).Return(nil).Once()
	}

	svc := services.NewDoctorStatsService(repo, services.WithClock(fixedClock(now)))
	updated, err := svc.RecomputeAll(ctx)

	assert.Equal(t, 2, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertExpectations(t)
}
