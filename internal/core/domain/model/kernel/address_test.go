package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create a valid address", func(t *testing.T) {
		addr, err := kernel.NewAddress("12 Main St", "Springfield", "62704", "US")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "12 Main St", addr.Street())
		assert.Equal(t, "Springfield", addr.City())
		assert.Equal(t, "62704", addr.PostalCode())
		assert.Equal(t, "US", addr.Country())
	})

	t.Run("should require every field", func(t *testing.T) {
		testCases := []struct {
			name                               string
			street, city, postalCode, country string
		}{
			{"empty street", "", "Springfield", "62704", "US"},
			{"empty city", "12 Main St", "", "62704", "US"},
			{"empty postal code", "12 Main St", "Springfield", "", "US"},
			{"empty country", "12 Main St", "Springfield", "62704", ""},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewAddress(tc.street, tc.city, tc.postalCode, tc.country)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsRequired)
			})
		}
	})

	t.Run("should reject direct struct instantiation", func(t *testing.T) {
		var addr kernel.Address
		require.Error(t, addr.Validate())
	})
}

func TestAddress_IsEqual(t *testing.T) {
	t.Run("should compare field by field", func(t *testing.T) {
		a, err := kernel.NewAddress("12 Main St", "Springfield", "62704", "US")
		require.NoError(t, err)
		b, err := kernel.NewAddress("12 Main St", "Springfield", "62704", "US")
		require.NoError(t, err)
		c, err := kernel.NewAddress("99 Elm St", "Springfield", "62704", "US")
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}
