package entity

import "time"

// CartItem is a product placed in a cart
type CartItem struct {
	ProductID uint64
	AddedAt   time.Time
}

// Cart is the set of products a user intends to buy.
// A product appears at most once.
type Cart struct {
	UserID uint64
	Items  []CartItem
}

// NewCart creates an empty cart owned by userID
func NewCart(userID uint64) *Cart {
	return &Cart{UserID: userID}
}

// Add places the product in the cart and reports whether it was new
func (c *Cart) Add(productID uint64, at time.Time) bool {
	if c.Contains(productID) {
		return false
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, AddedAt: at})
	return true
}

// Remove drops the product and reports whether it was present
func (c *Cart) Remove(productID uint64) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the product is in the cart
func (c *Cart) Contains(productID uint64) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the ids of every item, in insertion order
func (c *Cart) ProductIDs() []uint64 {
	ids := make([]uint64, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Shared returns, in insertion order, the ids of items also present in other
func (c *Cart) Shared(other *Cart) []uint64 {
	ids := make([]uint64, 0, len(c.Items))
	for _, item := range c.Items {
		if other != nil && other.Contains(item.ProductID) {
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Total sums the prices of the given products that are in the cart
func (c *Cart) Total(products []*Product) int64 {
	var total int64
	for _, p := range products {
		if c.Contains(p.ID) {
			total += p.Price
		}
	}
	return total
}
