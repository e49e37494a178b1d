package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("CLINIC_TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.CancellationCutoff)
	assert.Equal(t, 3*time.Second, cfg.LockWait)
	assert.True(t, decimal.NewFromInt(50000).Equal(cfg.MinWithdrawalAmount))
	assert.True(t, cfg.PlatformFee.IsZero())
	assert.Equal(t, time.UTC, cfg.ClinicTimezone)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("CANCELLATION_CUTOFF", "24h")
	t.Setenv("PLATFORM_FEE", "10000")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CLINIC_TIMEZONE", "Not/AZone")
	t.Setenv("LOCK_TTL", "banana")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.CancellationCutoff)
	assert.True(t, decimal.NewFromInt(10000).Equal(cfg.PlatformFee))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, time.UTC, cfg.ClinicTimezone)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
}
