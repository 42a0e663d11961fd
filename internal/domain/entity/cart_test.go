package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCart(t *testing.T) {
	now := time.Now()

	t.Run("should not duplicate items", func(t *testing.T) {
		cart := NewCart(9)

		assert.True(t, cart.Add(1, now))
		assert.False(t, cart.Add(1, now))
		assert.True(t, cart.Add(2, now))
		assert.Equal(t, []uint64{1, 2}, cart.ProductIDs())
	})

	t.Run("should remove items idempotently", func(t *testing.T) {
		cart := NewCart(9)
		cart.Add(1, now)

		assert.True(t, cart.Remove(1))
		assert.False(t, cart.Remove(1))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should total only items in the cart", func(t *testing.T) {
		cart := NewCart(9)
		cart.Add(1, now)
		cart.Add(2, now)

		total := cart.Total([]*Product{
			{ID: 1, Price: 1000},
			{ID: 2, Price: 500},
			{ID: 3, Price: 9900},
		})

		assert.Equal(t, int64(1500), total)
	})

	t.Run("should list items present in both carts", func(t *testing.T) {
		mine := NewCart(9)
		mine.Add(3, now)
		mine.Add(1, now)
		mine.Add(2, now)
		stored := NewCart(9)
		stored.Add(1, now)
		stored.Add(3, now)
		stored.Add(4, now)

		assert.Equal(t, []uint64{3, 1}, mine.Shared(stored))
		assert.Empty(t, mine.Shared(NewCart(9)))
		assert.Empty(t, mine.Shared(nil))
	})

	t.Run("should clear", func(t *testing.T) {
		cart := NewCart(9)
		cart.Add(1, now)
		cart.Clear()
		assert.True(t, cart.IsEmpty())
	})
}

func TestNewProductValidate(t *testing.T) {
	assert.NoError(t, NewProduct{Name: "Sticker pack", Price: 0}.Validate())
	assert.Error(t, NewProduct{Name: "", Price: 100}.Validate())
	assert.Error(t, NewProduct{Name: "x", Price: -1}.Validate())
	assert.Error(t, NewProduct{Name: "x", Images: make([]Upload, MaxProductImages+1)}.Validate())

	pt, err := ParseProductType("")
	assert.NoError(t, err)
	assert.Equal(t, ProductNormal, pt)

	_, err = ParseProductType("bundle")
	assert.Error(t, err)
}
