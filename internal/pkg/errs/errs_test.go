package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("product", "7f0c")

		assert.Equal(t, "product", err.ParamName)
		assert.Equal(t, "object not found: 7f0c", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		require.NotErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("order", "a1b2", cause)

		assert.Equal(t, "object not found: param is: order, ID is: a1b2 (cause: record not found)", err.Error())
		assert.Equal(t, cause, err.Cause)
	})

	t.Run("non string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 42)

		assert.Equal(t, "object not found: %!s(int=42)", err.Error())
	})
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid",
			err:      errs.NewValueIsInvalidError("payment status"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: payment status",
		},
		{
			name:     "invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("items[0].quantity", errors.New("0 is less than 1")),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: items[0].quantity (cause: 0 is less than 1)",
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("final amount", "120.00", "0", "100.00"),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 120.00 is final amount, min value is 0, max value is 100.00",
		},
		{
			name: "out of range with cause",
			err: errs.NewValueIsOutOfRangeErrorWithCause(
				"latitude", 91.5, -90, 90, errors.New("not on earth"),
			),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 91.5 is latitude, min value is -90, max value is 90 (cause: not on earth)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("actor"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: actor",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("items", errors.New("order must contain at least one item")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: items (cause: order must contain at least one item)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, tt.err, errs.ErrValidation)
		})
	}
}

func TestValidationErrors_ThroughJoinAndWrap(t *testing.T) {
	joined := errors.Join(
		errs.NewValueIsRequiredError("buyer name"),
		errs.NewValueIsInvalidError("total"),
	)
	wrapped := fmt.Errorf("invalid order data: %w", joined)

	require.ErrorIs(t, wrapped, errs.ErrValidation)
	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.ErrorIs(t, wrapped, errs.ErrValueIsInvalid)
	require.NotErrorIs(t, wrapped, errs.ErrObjectNotFound)
}

func TestOutOfRange_SanitizesValue(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("notes", "line one\nline two", 0, 10)

	assert.Contains(t, err.Error(), "line one line two")
	assert.NotContains(t, err.Error(), "\n")
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("version", errors.New("expected 3, stored 4"))

		assert.Equal(t, "version is invalid: version (cause: expected 3, stored 4)", err.Error())
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("version")

		assert.Equal(t, "version is invalid: version", err.Error())
		require.NoError(t, err.Cause)
		require.NotErrorIs(t, err, errs.ErrValidation)
	})
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	assert.Equal(t, "invalid state", errs.ErrInvalidState.Error())
	assert.Equal(t, "insufficient stock", errs.ErrInsufficientStock.Error())
	assert.Equal(t, "concurrent modification", errs.ErrConflict.Error())
}
