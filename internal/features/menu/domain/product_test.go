package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		product, err := NewProduct("burger-01", "Smash Burger", 12.50, true)
		require.NoError(t, err)

		assert.Equal(t, "burger-01", product.ID)
		assert.Equal(t, "Smash Burger", product.Name)
		assert.Equal(t, 12.50, product.Price)
		assert.True(t, product.Available)
	})

	t.Run("GeneratesIDWhenEmpty", func(t *testing.T) {
		product, err := NewProduct("", "Fries", 4.25, true)
		require.NoError(t, err)
		assert.NotEmpty(t, product.ID)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewProduct("", "", 4.25, true)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		_, err := NewProduct("", "Fries", 0, true)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		_, err := NewProduct("", "Fries", -1, true)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}
