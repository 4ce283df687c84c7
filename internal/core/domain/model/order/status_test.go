package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Confirmed,
	order.Processing,
	order.Delivered,
	order.Canceled,
}

func TestStatus_String(t *testing.T) {
	t.Run("should render lowercase wire values", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "confirmed", order.Confirmed.String())
		assert.Equal(t, "processing", order.Processing.String())
		assert.Equal(t, "delivered", order.Delivered.String())
		assert.Equal(t, "canceled", order.Canceled.String())
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestParseStatus(t *testing.T) {
	for _, status := range allStatuses {
		t.Run(fmt.Sprintf("should parse %s", status), func(t *testing.T) {
			parsed, err := order.ParseStatus(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		})
	}

	t.Run("should reject unknown and differently cased values", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "PENDING", "shipped"} {
			_, err := order.ParseStatus(s)
			require.ErrorIs(t, err, errs.ErrValidation, s)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range allStatuses {
		require.NoError(t, status.Validate())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	type transition func(order.Status) (order.Status, error)

	tests := []struct {
		name    string
		apply   transition
		allowed map[order.Status]order.Status
	}{
		{
			name:    "confirm",
			apply:   order.Status.Confirm,
			allowed: map[order.Status]order.Status{order.Pending: order.Confirmed},
		},
		{
			name:    "start processing",
			apply:   order.Status.StartProcessing,
			allowed: map[order.Status]order.Status{order.Confirmed: order.Processing},
		},
		{
			name:    "deliver",
			apply:   order.Status.Deliver,
			allowed: map[order.Status]order.Status{order.Processing: order.Delivered},
		},
		{
			name:  "cancel",
			apply: order.Status.Cancel,
			allowed: map[order.Status]order.Status{
				order.Pending:    order.Canceled,
				order.Confirmed:  order.Canceled,
				order.Processing: order.Canceled,
			},
		},
	}

	for _, tt := range tests {
		for _, from := range allStatuses {
			t.Run(fmt.Sprintf("%s from %s", tt.name, from), func(t *testing.T) {
				got, err := tt.apply(from)

				want, ok := tt.allowed[from]
				if !ok {
					require.ErrorIs(t, err, errs.ErrInvalidState)
					assert.Equal(t, order.Unknown, got)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestStatus_Predicates(t *testing.T) {
	t.Run("should mark delivered and canceled as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Canceled.IsTerminal())
		assert.False(t, order.Processing.IsTerminal())
	})

	t.Run("should hold stock only while confirmed or processing", func(t *testing.T) {
		assert.False(t, order.Pending.HoldsStock())
		assert.True(t, order.Confirmed.HoldsStock())
		assert.True(t, order.Processing.HoldsStock())
		assert.False(t, order.Canceled.HoldsStock())
	})

	t.Run("should allow edits only before processing", func(t *testing.T) {
		require.NoError(t, order.Pending.ValidateEditable())
		require.NoError(t, order.Confirmed.ValidateEditable())
		require.ErrorIs(t, order.Processing.ValidateEditable(), errs.ErrInvalidState)
		require.ErrorIs(t, order.Delivered.ValidateEditable(), errs.ErrInvalidState)
		require.ErrorIs(t, order.Canceled.ValidateEditable(), errs.ErrInvalidState)
	})

	t.Run("should allow billing only while processing", func(t *testing.T) {
		require.NoError(t, order.Processing.ValidateBillable())
		require.ErrorIs(t, order.Confirmed.ValidateBillable(), errs.ErrInvalidState)
		require.ErrorIs(t, order.Delivered.ValidateBillable(), errs.ErrInvalidState)
	})
}

func TestPaymentStatus(t *testing.T) {
	t.Run("should render uppercase wire values", func(t *testing.T) {
		assert.Equal(t, "PAID", order.Paid.String())
		assert.Equal(t, "UNPAID", order.Unpaid.String())
		assert.Equal(t, "PARTIALLY_PAID", order.PartiallyPaid.String())
	})

	t.Run("should parse wire values", func(t *testing.T) {
		status, err := order.ParsePaymentStatus("PARTIALLY_PAID")
		require.NoError(t, err)
		assert.Equal(t, order.PartiallyPaid, status)

		_, err = order.ParsePaymentStatus("paid")
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject unknown", func(t *testing.T) {
		require.Error(t, order.PaymentUnknown.Validate())
	})
}
