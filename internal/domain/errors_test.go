package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "kind sentinel matches any reason",
			err:    ErrInvalidMaxAmount,
			target: ErrConfig,
			want:   true,
		},
		{
			name:   "same reason matches",
			err:    NewError(KindConfig, "invalid max amount"),
			target: ErrInvalidMaxAmount,
			want:   true,
		},
		{
			name:   "different reason does not match",
			err:    ErrInvalidDailyRate,
			target: ErrInvalidMaxAmount,
			want:   false,
		},
		{
			name:   "different kind does not match",
			err:    ErrInvalidRealm,
			target: ErrConfig,
			want:   false,
		},
		{
			name:   "wrapped error matches",
			err:    fmt.Errorf("item 2: %w", ErrMaxTokenBalance),
			target: ErrCapacity,
			want:   true,
		},
		{
			name:   "same reason across kinds is distinguished",
			err:    ErrClaimBelowMin,
			target: ErrAmountBelowMin,
			want:   false,
		},
		{
			name:   "plain error does not match",
			err:    errors.New("invalid realm"),
			target: ErrNotFound,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "not realm admin", ErrNotRealmAdmin.Error())
	assert.Equal(t, "nothing_to_claim", ErrNothingToClaim.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindOwnership, KindOf(fmt.Errorf("wrapped: %w", ErrNftNotOwned)))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("boom")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestTransferError(t *testing.T) {
	cause := errors.New("insufficient allowance")
	err := TransferError(cause)

	assert.ErrorIs(t, err, ErrTransfer)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindTransfer, KindOf(err))
}
