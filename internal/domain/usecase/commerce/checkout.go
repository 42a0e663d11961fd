package commerce

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// Checkout charges the live price of every product in the cart and records
// one purchase per item. Only items still in the stored cart are bought, so
// submitting the same cart twice charges it once. The debit, the purchases
// and removing the bought items commit together or not at all.
func (s *Service) Checkout(ctx context.Context, actor entity.Actor, cart *entity.Cart) (*usecase.CheckoutResult, error) {
	if cart == nil {
		return nil, errs.ErrInvalidRequest
	}
	if cart.UserID != actor.UserID {
		return nil, errs.ErrUnauthorized
	}
	if cart.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}

	var result *usecase.CheckoutResult
	err := s.ledger.Exclusive(ctx, actor.UserID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(txCtx context.Context) error {
			carts := s.uow.GetCartRepository(txCtx)
			stored, err := carts.LoadForUpdate(txCtx, actor.UserID)
			if err != nil {
				return err
			}
			ids := cart.Shared(stored)
			if len(ids) == 0 {
				return errs.ErrEmptyCart
			}

			// Products deleted since they were added are dropped
			products, err := s.uow.GetProductRepository(txCtx).GetByIDs(txCtx, ids)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return errs.ErrEmptyCart
			}

			total := cart.Total(products)
			txn, err := s.ledger.Post(txCtx, usecase.AdjustRequest{
				UserID:      actor.UserID,
				Amount:      -total,
				Type:        entity.TypePurchase,
				Description: fmt.Sprintf("Purchased %d product(s)", len(products)),
			})
			if err != nil {
				return err
			}

			now := s.timeProvider.Now()
			purchases := make([]*entity.Purchase, 0, len(products))
			for _, p := range products {
				purchases = append(purchases, &entity.Purchase{
					UserID:      actor.UserID,
					ProductID:   p.ID,
					PricePaid:   p.Price,
					PurchasedAt: now,
					ProductName: p.Name,
					ProductType: p.Type,
				})
			}

			if err := s.uow.GetPurchaseRepository(txCtx).CreateBatch(txCtx, purchases); err != nil {
				return err
			}
			// items added after the caller read the cart stay for the next checkout
			if err := carts.RemoveItems(txCtx, actor.UserID, ids); err != nil {
				return err
			}

			result = &usecase.CheckoutResult{
				Purchases:   purchases,
				Total:       total,
				Transaction: txn,
			}
			return nil
		})
	})
	if err != nil {
		if errs.IsInsufficientFundsError(err) {
			s.logger.Info("Checkout rejected for insufficient funds", map[string]any{
				"user_id": actor.UserID,
				"items":   len(cart.Items),
			})
		}
		return nil, err
	}

	cart.Clear()

	s.logger.Info("Checkout completed successfully", map[string]any{
		"user_id": actor.UserID,
		"items":   len(result.Purchases),
		"total":   entity.AmountInCentsToString(result.Total),
	})
	return result, nil
}
