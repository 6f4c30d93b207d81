package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finaya/pixwallet/internal/apperrors"
)

func TestDescribe_MapsSentinelsToKinds(t *testing.T) {
	testCases := []struct {
		err      error
		wantKind string
	}{
		{apperrors.ErrNotFound, apperrors.KindNotFound},
		{apperrors.ErrValidation, apperrors.KindValidation},
		{apperrors.ErrDuplicate, apperrors.KindDuplicate},
		{apperrors.ErrInsufficientFunds, apperrors.KindInsufficientFunds},
		{apperrors.ErrForbidden, apperrors.KindForbidden},
		{errors.New("something unexpected"), apperrors.KindInternal},
	}

	for _, tc := range testCases {
		kind, msg := apperrors.Describe(tc.err)
		assert.Equal(t, tc.wantKind, kind)
		assert.Equal(t, tc.err.Error(), msg)
	}
}

func TestDescribe_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: balance 10.00 is less than 20.00", apperrors.ErrInsufficientFunds)

	kind, msg := apperrors.Describe(wrapped)

	assert.Equal(t, apperrors.KindInsufficientFunds, kind)
	assert.Contains(t, msg, "balance 10.00")
}

func TestFromDescriptor_RoundTrip(t *testing.T) {
	original := fmt.Errorf("%w: wallet abc", apperrors.ErrNotFound)
	kind, msg := apperrors.Describe(original)

	replayed := apperrors.FromDescriptor(kind, msg)

	assert.ErrorIs(t, replayed, apperrors.ErrNotFound)
	assert.Contains(t, replayed.Error(), "wallet abc")
}

func TestFromDescriptor_UnknownKindIsInternal(t *testing.T) {
	err := apperrors.FromDescriptor("SOMETHING_ELSE", "boom")
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}
