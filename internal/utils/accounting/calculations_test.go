package accounting

import (
	"testing"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyEntry(t *testing.T) {
	tests := []struct {
		name      string
		balance   string
		entryType domain.EntryType
		amount    string
		want      string
		wantErr   bool
	}{
		{"deposit adds", "0", domain.EntryDeposit, "100000", "100000", false},
		{"payment subtracts", "500000", domain.EntryAppointmentPayment, "200000", "300000", false},
		{"overdraft is computed, not rejected", "100", domain.EntryWithdrawal, "150", "-50", false},
		{"reversal adds", "0", domain.EntryWithdrawalReversal, "150", "150", false},
		{"zero amount rejected", "0", domain.EntryDeposit, "0", "", true},
		{"negative amount rejected", "0", domain.EntryRefund, "-1", "", true},
		{"unknown type rejected", "0", domain.EntryType("BONUS"), "1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEntry(d(tt.balance), tt.entryType, d(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRefundAmount(t *testing.T) {
	assert.True(t, d("400000").Equal(RefundAmount(d("500000"), d("80"))))
	assert.True(t, d("500000").Equal(RefundAmount(d("500000"), d("100"))))
	assert.True(t, decimal.Zero.Equal(RefundAmount(d("500000"), d("0"))))
	// rounds half away from zero
	assert.True(t, d("3").Equal(RefundAmount(d("5"), d("50"))))
	// clamped
	assert.True(t, d("500").Equal(RefundAmount(d("500"), d("150"))))
	assert.True(t, decimal.Zero.Equal(RefundAmount(d("500"), d("-5"))))
}

func TestParsePercentage(t *testing.T) {
	p, err := ParsePercentage("80")
	require.NoError(t, err)
	assert.True(t, d("80").Equal(p))

	p, err = ParsePercentage(" 87.5 ")
	require.NoError(t, err)
	assert.True(t, d("87.5").Equal(p))

	_, err = ParsePercentage("abc")
	assert.Error(t, err)
	_, err = ParsePercentage("120")
	assert.Error(t, err)
	_, err = ParsePercentage("-1")
	assert.Error(t, err)
}
