package jobs

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStats struct{ mock.Mock }

func (m *mockStats) RecomputeDoctorStats(ctx context.Context, doctorID string) (*domain.DoctorStats, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DoctorStats), args.Error(1)
}

func (m *mockStats) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockAuditor struct{ mock.Mock }

func (m *mockAuditor) VerifyChain(ctx context.Context, walletID string) error {
	return m.Called(ctx, walletID).Error(0)
}

func (m *mockAuditor) VerifyAllChains(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newTestScheduler(t *testing.T) (*Scheduler, *mockStats, *mockAuditor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	stats := new(mockStats)
	auditor := new(mockAuditor)
	s := NewScheduler(stats, auditor, time.UTC, slog.New(slog.NewJSONHandler(&buf, nil)))
	return s, stats, auditor, &buf
}

func TestScheduler_Register(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	require.NoError(t, s.Register("0 2 * * *", "30 3 * * *"))
	assert.Equal(t, 2, s.Entries())

	s2, _, _, _ := newTestScheduler(t)
	require.NoError(t, s2.Register("", ""))
	assert.Zero(t, s2.Entries(), "empty specs disable the jobs")

	s3, _, _, _ := newTestScheduler(t)
	assert.Error(t, s3.Register("not a spec", ""))
}

func TestScheduler_RecomputeStats(t *testing.T) {
	s, stats, _, buf := newTestScheduler(t)
	stats.On("RecomputeAll", mock.Anything).Return(3, nil).Once()

	s.RecomputeStats(context.Background())

	stats.AssertExpectations(t)
	assert.Contains(t, buf.String(), `"updated":3`)
}

func TestScheduler_RecomputeStatsPartialFailure(t *testing.T) {
	s, stats, _, buf := newTestScheduler(t)
	stats.On("RecomputeAll", mock.Anything).Return(2, assert.AnError).Once()

	s.RecomputeStats(context.Background())

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestScheduler_AuditLedgers(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		s, _, auditor, buf := newTestScheduler(t)
		auditor.On("VerifyAllChains", mock.Anything).Return([]string{}, nil).Once()
		s.AuditLedgers(context.Background())
		assert.Contains(t, buf.String(), "Ledger audit passed")
	})

	t.Run("drift is reported", func(t *testing.T) {
		s, _, auditor, buf := newTestScheduler(t)
		auditor.On("VerifyAllChains", mock.Anything).Return([]string{"w-1"}, nil).Once()
		s.AuditLedgers(context.Background())
		assert.Contains(t, buf.String(), "w-1")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("audit error", func(t *testing.T) {
		s, _, auditor, buf := newTestScheduler(t)
		auditor.On("VerifyAllChains", mock.Anything).Return(nil, assert.AnError).Once()
		s.AuditLedgers(context.Background())
		assert.Contains(t, buf.String(), "Ledger audit failed")
	})
}

func TestScheduler_StartStop(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
