package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/dteedee/MEDIX-sub004/internal/core/ports/repositories"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

// ServiceOption is a functional option applied to every service's BaseService
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mainly for tests
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options []ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC
func (s *BaseService) Now() time.Time {
	if s.clock != nil {
		return s.clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// runInTx runs fn inside a transaction, committing on success. The deferred
// rollback is a no-op once the transaction is committed.
func runInTx(ctx context.Context, tm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tm.Rollback(ctx, tx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tm.Commit(ctx, tx)
}
