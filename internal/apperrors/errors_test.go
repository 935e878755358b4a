package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppError(ErrStoreUnavailable, "failed to lock account A001", cause)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "failed to lock account A001: connection refused", err.Error())
}

func TestAppErrorMessageFallsBackToKind(t *testing.T) {
	err := NewAppError(ErrBusy, "", nil)
	assert.Equal(t, "resource busy", err.Error())
}

func TestKindOfWrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
		code string
	}{
		{"plain sentinel", ErrInsufficientFunds, ErrInsufficientFunds, "INSUFFICIENT_FUNDS"},
		{"fmt wrapped", fmt.Errorf("%w: account A001", ErrNotFound), ErrNotFound, "NOT_FOUND"},
		{"app error", NewAppError(ErrDuplicate, "loan L1 exists", nil), ErrDuplicate, "DUPLICATE_ID"},
		{"double wrapped", fmt.Errorf("transfer failed: %w", NewAppError(ErrBusy, "lock timeout", nil)), ErrBusy, "BUSY"},
		{"unknown", errors.New("boom"), nil, "INTERNAL"},
		{"nil", nil, nil, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.Equal(t, tt.code, KindName(tt.err))
		})
	}
}
