package usecase

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// CheckoutResult is returned by a successful checkout
type CheckoutResult struct {
	Purchases   []*entity.Purchase
	Total       int64
	Transaction *entity.Transaction
}

// CartView is a cart priced with live product prices
type CartView struct {
	Cart     *entity.Cart
	Products []*entity.Product
	Total    int64
}

// SubscriptionResult reports the tier after a subscription change
type SubscriptionResult struct {
	Tier        entity.Tier
	Transaction *entity.Transaction
}

// CommerceUseCase defines catalogue, cart, checkout and subscription operations
type CommerceUseCase interface {
	Checkout(ctx context.Context, actor entity.Actor, cart *entity.Cart) (*CheckoutResult, error)

	BuySubscription(ctx context.Context, actor entity.Actor, plan string) (*SubscriptionResult, error)
	CancelSubscription(ctx context.Context, actor entity.Actor) (*SubscriptionResult, error)
	// SetSubscription overrides a tier without charging (admin only)
	SetSubscription(ctx context.Context, actor entity.Actor, userID uint64, plan string) error

	CreateProduct(ctx context.Context, actor entity.Actor, req entity.NewProduct) (*entity.Product, error)
	DeleteProduct(ctx context.Context, actor entity.Actor, productID uint64) error
	GetProduct(ctx context.Context, productID uint64) (*entity.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error)

	AddToCart(ctx context.Context, actor entity.Actor, productID uint64) error
	RemoveFromCart(ctx context.Context, actor entity.Actor, productID uint64) error
	GetCart(ctx context.Context, actor entity.Actor) (*CartView, error)

	ListPurchases(ctx context.Context, actor entity.Actor) ([]*entity.Purchase, error)
}
