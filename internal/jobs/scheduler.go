// Package jobs runs the periodic maintenance work: doctor stats recompute and
// the wallet ledger audit.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner with the maintenance jobs registered on it.
type Scheduler struct {
	cron    *cron.Cron
	stats   portssvc.DoctorStatsSvc
	auditor portssvc.LedgerAuditorSvc
	logger  *slog.Logger
	timeout time.Duration
}

// NewScheduler builds a scheduler whose specs are evaluated in loc.
func NewScheduler(stats portssvc.DoctorStatsSvc, auditor portssvc.LedgerAuditorSvc, loc *time.Location, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stats:   stats,
		auditor: auditor,
		logger:  logger,
		timeout: 30 * time.Minute,
	}
}

// Register adds both jobs. An empty spec leaves that job disabled.
func (s *Scheduler) Register(statsSpec, auditSpec string) error {
	if statsSpec != "" {
		if _, err := s.cron.AddFunc(statsSpec, func() { s.RecomputeStats(context.Background()) }); err != nil {
			return fmt.Errorf("invalid stats recompute schedule %q: %w", statsSpec, err)
		}
		s.logger.Info("Doctor stats recompute scheduled", slog.String("spec", statsSpec))
	}
	if auditSpec != "" {
		if _, err := s.cron.AddFunc(auditSpec, func() { s.AuditLedgers(context.Background()) }); err != nil {
			return fmt.Errorf("invalid ledger audit schedule %q: %w", auditSpec, err)
		}
		s.logger.Info("Ledger audit scheduled", slog.String("spec", auditSpec))
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduled jobs still running at shutdown")
	}
}

// Entries reports how many jobs are registered.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RecomputeStats refreshes every active doctor's counters.
func (s *Scheduler) RecomputeStats(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	updated, err := s.stats.RecomputeAll(ctx)
	if err != nil {
		s.logger.Error("Doctor stats recompute finished with errors", slog.Int("updated", updated), slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Doctor stats recomputed", slog.Int("updated", updated), slog.Duration("took", time.Since(start)))
}

// AuditLedgers checks every wallet's chain against its cached balance.
func (s *Scheduler) AuditLedgers(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	broken, err := s.auditor.VerifyAllChains(ctx)
	if err != nil {
		s.logger.Error("Ledger audit failed", slog.String("error", err.Error()))
		return
	}
	if len(broken) > 0 {
		s.logger.Error("Ledger audit found inconsistent wallets", slog.Any("wallet_ids", broken))
		return
	}
	s.logger.Info("Ledger audit passed")
}
