package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	MigrationsPath    string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	CORSAllowOrigins  []string
	RateLimit         string // ulule formatted rate, e.g. "100-M"

	// Redis backs the cross-replica booking lock. Empty means an in-process lock.
	RedisURL string
	LockTTL  time.Duration
	LockWait time.Duration

	// Booking rules
	ClinicTimezone       *time.Location
	CancellationCutoff   time.Duration
	PlatformFee          decimal.Decimal
	MinWithdrawalAmount  decimal.Decimal
	MaxAvailabilityRange time.Duration
	WalletCurrency       string

	// Payment gateway used for wallet top-ups
	PaymentBaseURL     string
	PaymentClientID    string
	PaymentAPIKey      string
	PaymentChecksumKey string
	PaymentReturnURL   string
	PaymentCancelURL   string

	// Scheduled jobs (robfig/cron specs, empty disables)
	StatsRecomputeSpec string
	LedgerAuditSpec    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "medix")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LOCK_TTL", "10s")
	viper.SetDefault("LOCK_WAIT", "3s")
	viper.SetDefault("CLINIC_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("CANCELLATION_CUTOFF", "2h")
	viper.SetDefault("PLATFORM_FEE", "0")
	viper.SetDefault("MIN_WITHDRAWAL_AMOUNT", "50000")
	viper.SetDefault("MAX_AVAILABILITY_RANGE", "744h")
	viper.SetDefault("WALLET_CURRENCY", "VND")
	viper.SetDefault("PAYMENT_BASE_URL", "https://api-merchant.payos.vn")
	viper.SetDefault("PAYMENT_CLIENT_ID", "")
	viper.SetDefault("PAYMENT_API_KEY", "")
	viper.SetDefault("PAYMENT_CHECKSUM_KEY", "")
	viper.SetDefault("PAYMENT_RETURN_URL", "http://localhost:3000/wallet/topup/success")
	viper.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/wallet/topup/cancel")
	viper.SetDefault("STATS_RECOMPUTE_SPEC", "0 2 * * *")
	viper.SetDefault("LEDGER_AUDIT_SPEC", "30 3 * * *")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "medix"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.LockTTL = durationOrDefault("LOCK_TTL", 10*time.Second)
	cfg.LockWait = durationOrDefault("LOCK_WAIT", 3*time.Second)

	tzName := viper.GetString("CLINIC_TIMEZONE")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Warning: Invalid CLINIC_TIMEZONE ('%s'). Defaulting to UTC.\n", tzName)
		loc = time.UTC
	}
	cfg.ClinicTimezone = loc

	cfg.CancellationCutoff = durationOrDefault("CANCELLATION_CUTOFF", 2*time.Hour)
	cfg.PlatformFee = decimalOrDefault("PLATFORM_FEE", decimal.Zero)
	cfg.MinWithdrawalAmount = decimalOrDefault("MIN_WITHDRAWAL_AMOUNT", decimal.NewFromInt(50000))
	cfg.MaxAvailabilityRange = durationOrDefault("MAX_AVAILABILITY_RANGE", 31*24*time.Hour)
	cfg.WalletCurrency = viper.GetString("WALLET_CURRENCY")

	cfg.PaymentBaseURL = viper.GetString("PAYMENT_BASE_URL")
	cfg.PaymentClientID = viper.GetString("PAYMENT_CLIENT_ID")
	cfg.PaymentAPIKey = viper.GetString("PAYMENT_API_KEY")
	cfg.PaymentChecksumKey = viper.GetString("PAYMENT_CHECKSUM_KEY")
	cfg.PaymentReturnURL = viper.GetString("PAYMENT_RETURN_URL")
	cfg.PaymentCancelURL = viper.GetString("PAYMENT_CANCEL_URL")
	if cfg.PaymentChecksumKey == "" {
		log.Println("Warning: PAYMENT_CHECKSUM_KEY not set. Payment callbacks will be rejected.")
	}

	cfg.StatsRecomputeSpec = viper.GetString("STATS_RECOMPUTE_SPEC")
	cfg.LedgerAuditSpec = viper.GetString("LEDGER_AUDIT_SPEC")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func decimalOrDefault(key string, def decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
