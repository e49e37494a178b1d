package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperrors.Code
	}{
		{"wrapped sentinel", fmt.Errorf("book: %w", apperrors.ErrSlotUnavailable), http.StatusConflict, apperrors.CodeSlotUnavailable},
		{"balance", apperrors.ErrInsufficientBalance, http.StatusPaymentRequired, apperrors.CodeInsufficientBalance},
		{"bad cursor", fmt.Errorf("%w: invalid nextToken: bad base64", apperrors.ErrValidation), http.StatusBadRequest, apperrors.CodeValidation},
		{"upstream", apperrors.NewAppError(502, "payment gateway unavailable", errors.New("timeout")), http.StatusBadGateway, apperrors.CodeInternal},
		{"infrastructure", apperrors.NewAppError(500, "failed to begin transaction", errors.New("conn reset")), http.StatusInternalServerError, apperrors.CodeInternal},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apperrors.Classify(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			assert.NotEmpty(t, got.MessageKey)
		})
	}
}

func TestClassify_MessageOmitsWrappedDetail(t *testing.T) {
	err := fmt.Errorf("%w: wallet 3f1c9b7e-wallet is inactive", apperrors.ErrForbidden)

	got := apperrors.Classify(err)

	assert.Equal(t, apperrors.ErrForbidden.Error(), got.Message)
	assert.NotContains(t, got.Message, "3f1c9b7e")
	assert.Equal(t, "An internal error occurred", apperrors.Classify(errors.New("pool exhausted")).Message)
}

func TestAppError_Unwraps(t *testing.T) {
	cause := errors.New("dial tcp")
	err := apperrors.NewAppError(500, "failed to query", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to query: dial tcp", err.Error())
}
