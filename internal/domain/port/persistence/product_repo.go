package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// ProductRepository manages the product catalogue
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error

	// GetByID returns ErrProductNotFound when the product doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)

	// GetByIDs returns the products that still exist, in id order
	GetByIDs(ctx context.Context, ids []uint64) ([]*entity.Product, error)

	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	CountByOwner(ctx context.Context, ownerID uint64) (int64, error)

	// Delete returns ErrProductNotFound when nothing was removed
	Delete(ctx context.Context, id uint64) error
}

// PurchaseRepository records completed purchases
type PurchaseRepository interface {
	CreateBatch(ctx context.Context, purchases []*entity.Purchase) error

	// ListByUser returns purchases joined with product name and type, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Purchase, error)
}

// CartRepository persists cart items
type CartRepository interface {
	// Load returns the user's cart, empty when nothing was added
	Load(ctx context.Context, userID uint64) (*entity.Cart, error)

	// LoadForUpdate is Load with the cart rows locked until the transaction
	// in ctx ends
	LoadForUpdate(ctx context.Context, userID uint64) (*entity.Cart, error)

	// AddItem inserts the item unless present and reports whether a row was added
	AddItem(ctx context.Context, userID, productID uint64) (bool, error)

	// RemoveItem reports whether a row was removed
	RemoveItem(ctx context.Context, userID, productID uint64) (bool, error)

	// RemoveItems deletes the listed products from the cart
	RemoveItems(ctx context.Context, userID uint64, productIDs []uint64) error
}
