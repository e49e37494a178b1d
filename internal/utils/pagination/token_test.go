package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(createdAt, "entry-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, "entry-1", decodedID)

	// Zero time
	zeroToken := EncodeToken(time.Time{}, "x")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.True(t, decodedZero.IsZero())

	// Non-UTC offsets survive the round trip as the same instant
	loc := time.FixedZone("ICT", 7*3600)
	local := time.Date(2025, 1, 2, 9, 0, 0, 0, loc)
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "y"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal))
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!"},
		{"missing separator", base64.StdEncoding.EncodeToString([]byte("2025-01-01T00:00:00Z"))},
		{"missing id", base64.StdEncoding.EncodeToString([]byte("2025-01-01T00:00:00Z|"))},
		{"bad time", base64.StdEncoding.EncodeToString([]byte("yesterday|abc"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
