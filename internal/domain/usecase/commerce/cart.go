package commerce

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// AddToCart puts a product in the actor's cart. Adding twice is a no-op.
func (s *Service) AddToCart(ctx context.Context, actor entity.Actor, productID uint64) error {
	if _, err := s.uow.GetProductRepository(ctx).GetByID(ctx, productID); err != nil {
		return err
	}

	added, err := s.uow.GetCartRepository(ctx).AddItem(ctx, actor.UserID, productID)
	if err != nil {
		return err
	}

	s.logger.Debug("Cart item added", map[string]any{
		"user_id":    actor.UserID,
		"product_id": productID,
		"added":      added,
	})
	return nil
}

// RemoveFromCart takes a product out of the cart. Removing a missing item is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, actor entity.Actor, productID uint64) error {
	_, err := s.uow.GetCartRepository(ctx).RemoveItem(ctx, actor.UserID, productID)
	return err
}

// GetCart loads the actor's cart and prices it with current product prices
func (s *Service) GetCart(ctx context.Context, actor entity.Actor) (*usecase.CartView, error) {
	cart, err := s.uow.GetCartRepository(ctx).Load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	view := &usecase.CartView{Cart: cart, Products: []*entity.Product{}}
	if cart.IsEmpty() {
		return view, nil
	}

	products, err := s.uow.GetProductRepository(ctx).GetByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, err
	}
	view.Products = products
	view.Total = cart.Total(products)
	return view, nil
}

// ListPurchases returns the actor's purchase history
func (s *Service) ListPurchases(ctx context.Context, actor entity.Actor) ([]*entity.Purchase, error) {
	return s.uow.GetPurchaseRepository(ctx).ListByUser(ctx, actor.UserID)
}
