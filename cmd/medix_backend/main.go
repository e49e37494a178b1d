package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dteedee/MEDIX-sub004/internal/adapters/banking"
	"github.com/dteedee/MEDIX-sub004/internal/adapters/payment"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/core/services"
	"github.com/dteedee/MEDIX-sub004/internal/handlers"
	"github.com/dteedee/MEDIX-sub004/internal/jobs"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/dteedee/MEDIX-sub004/internal/platform/config"
	"github.com/dteedee/MEDIX-sub004/internal/platform/lock"
	"github.com/dteedee/MEDIX-sub004/internal/repositories/database/pgsql"
	"github.com/dteedee/MEDIX-sub004/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title MEDIX Booking API
// @version 1.0
// @description Appointment booking and wallet ledger for the MEDIX telemedicine platform.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error { return dbPool.Ping(ctx) },
	}

	var locker portssvc.Locker
	if cfg.RedisURL != "" {
		redisClient, err := lock.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer closeRedis(redisClient, logger)
		locker = lock.NewRedisLocker(redisClient, cfg.LockTTL, cfg.LockWait)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("Using redis booking lock.")
	} else {
		locker = lock.NewLocalLocker(cfg.LockWait)
		logger.Warn("REDIS_URL not set; booking lock is in-process only. Do not run more than one replica.")
	}

	gateway := payment.NewGateway(payment.Config{
		BaseURL:     cfg.PaymentBaseURL,
		ClientID:    cfg.PaymentClientID,
		APIKey:      cfg.PaymentAPIKey,
		ChecksumKey: cfg.PaymentChecksumKey,
		ReturnURL:   cfg.PaymentReturnURL,
		CancelURL:   cfg.PaymentCancelURL,
	}, nil)

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.ClinicTimezone)
	serviceContainer := services.NewServiceContainer(cfg, repos, services.Collaborators{
		Locker:  locker,
		Gateway: gateway,
		Bank:    banking.NewManualPayout(logger),
	})

	scheduler := jobs.NewScheduler(serviceContainer.DoctorStats, serviceContainer.Ledger, cfg.ClinicTimezone, logger)
	if err := scheduler.Register(cfg.StatsRecomputeSpec, cfg.LedgerAuditSpec); err != nil {
		logger.Error("Failed to register scheduled jobs", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("Scheduler started", slog.Int("jobs", scheduler.Entries()))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ipLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	userLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// No identity exists yet at this point, so this one limits per IP.
	r.Use(middleware.RateLimit(ipLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, checks, middleware.RateLimit(userLimiter))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	scheduler.Stop(shutdownCtx)
}

// runMigrations applies every pending "up" migration through a temporary
// database/sql handle using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func closeRedis(client *redis.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("Error closing redis client", slog.String("error", err.Error()))
	}
}
