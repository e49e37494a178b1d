package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0 VND", FormatMoney(decimal.Zero, "VND"))
	assert.Equal(t, "500 VND", FormatMoney(decimal.NewFromInt(500), "VND"))
	assert.Equal(t, "1,250,000 VND", FormatMoney(decimal.NewFromInt(1250000), "VND"))
	assert.Equal(t, "-100,000", FormatMoney(decimal.NewFromInt(-100000), ""))
}

func TestGenerateOrderCode(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOrderCode()
		require.NoError(t, err)
		assert.Positive(t, code)
		assert.LessOrEqual(t, code, int64(maxOrderCode))
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("user-1", "DOCTOR", "secret", time.Hour, "medix")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "DOCTOR", claims.Role)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT("user-1", "PATIENT", "secret", -time.Minute, "medix")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.Error(t, err)
}
