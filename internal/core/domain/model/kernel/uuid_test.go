package kernel_test

import (
	"slices"
	"testing"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderIDText = "3f2b8c1e-9d4a-4e7b-8a61-0c5d2e9f7a13"

func TestNewUUID_IsRandomAndValid(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		id := kernel.NewUUID()
		require.NoError(t, id.Validate())
		assert.Equal(t, uuid.Version(4), id.Bytes().Version())

		_, dup := seen[id.String()]
		require.False(t, dup, "duplicate id %s", id)
		seen[id.String()] = struct{}{}
	}
}

func TestUUIDFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "canonical", input: orderIDText, want: orderIDText},
		{name: "upper case", input: "3F2B8C1E-9D4A-4E7B-8A61-0C5D2E9F7A13", want: orderIDText},
		{name: "braced", input: "{" + orderIDText + "}", want: orderIDText},
		{name: "urn", input: "urn:uuid:" + orderIDText, want: orderIDText},
		{name: "empty", input: "", wantErr: "invalid UUID format"},
		{name: "sku instead of id", input: "SKU-0042", wantErr: "invalid UUID format"},
		{name: "truncated", input: orderIDText[:30], wantErr: "invalid UUID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Error(t, id.Validate())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	stored := uuid.MustParse(orderIDText)

	tests := []struct {
		name    string
		input   []byte
		wantErr error
		wantMsg string
	}{
		{name: "stored column value", input: stored[:]},
		{name: "nil uuid", input: uuid.Nil[:], wantErr: kernel.ErrUUIDIsNotConstructed},
		{name: "short slice", input: stored[:8], wantMsg: "invalid UUID format"},
		{name: "no bytes", input: nil, wantMsg: "invalid UUID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromBytes(tt.input)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, orderIDText, id.String())
				assert.Equal(t, stored, id.Bytes())
			}
		})
	}
}

func TestUUID_ZeroValueIsNotConstructed(t *testing.T) {
	type lineItem struct {
		ProductID kernel.UUID
		Quantity  int
	}

	var item lineItem
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, item.ProductID.Validate())

	item.ProductID = kernel.NewUUID()
	assert.NoError(t, item.ProductID.Validate())
}

func TestUUID_IsEqual(t *testing.T) {
	a, err := kernel.UUIDFromString(orderIDText)
	require.NoError(t, err)
	b, err := kernel.UUIDFromString("urn:uuid:" + orderIDText)
	require.NoError(t, err)
	other := kernel.NewUUID()

	assert.True(t, a.IsEqual(b))
	assert.True(t, b.IsEqual(a))
	assert.False(t, a.IsEqual(other))
	assert.True(t, kernel.UUID{}.IsEqual(kernel.UUID{}))
	assert.False(t, kernel.UUID{}.IsEqual(a))
}

func TestUUID_BytesReturnsCopy(t *testing.T) {
	id := kernel.NewUUID()
	before := id.String()

	raw := id.Bytes()
	raw[0] ^= 0xFF

	assert.Equal(t, before, id.String())
	assert.NotEqual(t, before, raw.String())
}

func TestUUID_CompareGivesStableLockOrder(t *testing.T) {
	parse := func(s string) kernel.UUID {
		id, err := kernel.UUIDFromString(s)
		require.NoError(t, err)
		return id
	}

	first := parse("00000000-0000-4000-8000-000000000001")
	second := parse("7fffffff-0000-4000-8000-000000000000")
	third := parse("ffffffff-0000-4000-8000-000000000000")

	assert.Negative(t, first.Compare(second))
	assert.Positive(t, third.Compare(second))
	assert.Zero(t, second.Compare(second))

	products := []kernel.UUID{third, first, second}
	slices.SortFunc(products, kernel.UUID.Compare)
	assert.Equal(t, []kernel.UUID{first, second, third}, products)
}
