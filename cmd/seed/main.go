package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	portssvc "github.com/dteedee/MEDIX-sub004/internal/core/ports/services"
	"github.com/dteedee/MEDIX-sub004/internal/core/services"
	"github.com/dteedee/MEDIX-sub004/internal/platform/config"
	"github.com/dteedee/MEDIX-sub004/internal/repositories/database/pgsql"
	"github.com/dteedee/MEDIX-sub004/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const seedActor = "SEED"

func main() {
	doctors := flag.Int("doctors", 20, "number of doctors to create")
	patients := flag.Int("patients", 200, "number of patient wallets to fund")
	seed := flag.Uint64("seed", 0, "faker seed, 0 for random")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	faker := gofakeit.New(*seed)

	if err := seedDoctors(ctx, pool, faker, *doctors, logger); err != nil {
		logger.Error("Failed to seed doctors", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seedPromotion(ctx, pool, faker); err != nil {
		logger.Error("Failed to seed promotion", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Balances go through the ledger so the seeded chains verify.
	repos := pgsql.NewRepositoryProvider(pool, cfg.ClinicTimezone)
	ledger := services.NewLedgerService(repos.TxManager, repos.WalletRepo, cfg.WalletCurrency)
	if err := seedWallets(ctx, ledger, faker, *patients, logger); err != nil {
		logger.Error("Failed to seed wallets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Seed complete", slog.Int("doctors", *doctors), slog.Int("patients", *patients))
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, faker *gofakeit.Faker, count int, logger *slog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := 0; i < count; i++ {
		doctorID := uuid.NewString()
		fee := decimal.NewFromInt(int64(faker.Number(2, 10)) * 50000)

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (doctor_id, user_id, consultation_fee, is_verified, is_accepting_appointments)
			VALUES ($1, $2, $3, TRUE, $4)
		`, doctorID, uuid.NewString(), fee, faker.Number(1, 10) > 1)
		if err != nil {
			return fmt.Errorf("insert doctor: %w", err)
		}

		// Weekday morning and afternoon blocks, with a random day off.
		dayOff := time.Weekday(faker.Number(1, 5))
		for day := time.Monday; day <= time.Friday; day++ {
			if day == dayOff {
				continue
			}
			for _, block := range [][2]string{{"08:00", "11:30"}, {"13:30", "17:00"}} {
				_, err := tx.Exec(ctx, `
					INSERT INTO doctor_schedules (schedule_id, doctor_id, day_of_week, start_time, end_time, is_available)
					VALUES ($1, $2, $3, $4, $5, TRUE)
				`, uuid.NewString(), doctorID, int(day), block[0], block[1])
				if err != nil {
					return fmt.Errorf("insert schedule: %w", err)
				}
			}
		}

		if faker.Bool() {
			leave := time.Now().UTC().AddDate(0, 0, faker.Number(1, 14))
			_, err := tx.Exec(ctx, `
				INSERT INTO doctor_schedule_overrides (override_id, doctor_id, override_date, start_time, end_time, is_available, reason)
				VALUES ($1, $2, $3, '00:00', '23:59', FALSE, $4)
			`, uuid.NewString(), doctorID, leave.Format(time.DateOnly), faker.Sentence(4))
			if err != nil {
				return fmt.Errorf("insert override: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	logger.Info("Doctors seeded", slog.Int("count", count))
	return nil
}

func seedPromotion(ctx context.Context, pool *pgxpool.Pool, faker *gofakeit.Faker) error {
	now := time.Now().UTC()
	_, err := pool.Exec(ctx, `
		INSERT INTO promotions (code, discount_type, discount_value, max_usage, used_count, starts_at, ends_at, is_active)
		VALUES ($1, 'PERCENTAGE', $2, $3, 0, $4, $5, TRUE)
		ON CONFLICT (code) DO NOTHING
	`, "WELCOME"+faker.DigitN(2), decimal.NewFromInt(int64(faker.Number(5, 30))), faker.Number(50, 500), now, now.AddDate(0, 1, 0))
	return err
}

func seedWallets(ctx context.Context, ledger portssvc.LedgerSvcFacade, faker *gofakeit.Faker, count int, logger *slog.Logger) error {
	for i := 0; i < count; i++ {
		wallet, err := ledger.EnsureWallet(ctx, uuid.NewString())
		if err != nil {
			return err
		}
		_, err = ledger.Append(ctx, domain.LedgerPosting{
			WalletID:    wallet.WalletID,
			Type:        domain.EntryDeposit,
			Amount:      decimal.NewFromInt(int64(faker.Number(1, 40)) * 50000),
			Status:      domain.EntryCompleted,
			Description: "Seed deposit",
			CreatedBy:   seedActor,
		})
		if err != nil {
			return err
		}
	}
	logger.Info("Wallets seeded", slog.Int("count", count))
	return nil
}
