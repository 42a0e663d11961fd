package commerce

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// BuySubscription charges the plan price and switches the actor to the plan.
// Upgrades and downgrades both just overwrite the tier.
func (s *Service) BuySubscription(ctx context.Context, actor entity.Actor, plan string) (*usecase.SubscriptionResult, error) {
	tier, err := entity.ParsePlan(plan)
	if err != nil {
		return nil, err
	}
	price, err := tier.Price()
	if err != nil {
		return nil, err
	}

	var txn *entity.Transaction
	err = s.ledger.Exclusive(ctx, actor.UserID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(txCtx context.Context) error {
			changed, err := s.uow.GetUserRepository(txCtx).SetSubscription(txCtx, actor.UserID, tier)
			if err != nil {
				return err
			}
			if !changed {
				return errs.ErrAlreadySubscribed
			}

			txn, err = s.ledger.Post(txCtx, usecase.AdjustRequest{
				UserID:      actor.UserID,
				Amount:      -price,
				Type:        entity.TypeSubscription,
				Description: fmt.Sprintf("Purchased %s subscription", tier.DisplayName()),
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subscription purchased", map[string]any{
		"user_id": actor.UserID,
		"tier":    string(tier),
		"price":   entity.AmountInCentsToString(price),
	})
	return &usecase.SubscriptionResult{Tier: tier, Transaction: txn}, nil
}

// CancelSubscription drops the actor back to the free tier. Cancelling
// without a plan changes nothing.
func (s *Service) CancelSubscription(ctx context.Context, actor entity.Actor) (*usecase.SubscriptionResult, error) {
	var txn *entity.Transaction
	err := s.ledger.Exclusive(ctx, actor.UserID, func(ctx context.Context) error {
		return s.uow.Do(ctx, func(txCtx context.Context) error {
			changed, err := s.uow.GetUserRepository(txCtx).SetSubscription(txCtx, actor.UserID, entity.TierNone)
			if err != nil || !changed {
				return err
			}

			txn, err = s.ledger.Post(txCtx, usecase.AdjustRequest{
				UserID:      actor.UserID,
				Amount:      0,
				Type:        entity.TypeSubscriptionCancel,
				Description: "Subscription cancelled",
			})
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	if txn != nil {
		s.logger.Info("Subscription cancelled", map[string]any{"user_id": actor.UserID})
	}
	return &usecase.SubscriptionResult{Tier: entity.TierNone, Transaction: txn}, nil
}

// SetSubscription lets an administrator grant any tier without a charge
func (s *Service) SetSubscription(ctx context.Context, actor entity.Actor, userID uint64, plan string) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}
	tier, err := entity.ParseTier(plan)
	if err != nil {
		return err
	}

	if _, err := s.uow.GetUserRepository(ctx).SetSubscription(ctx, userID, tier); err != nil {
		return err
	}

	s.logger.Info("Subscription set by admin", map[string]any{
		"admin_id": actor.UserID,
		"user_id":  userID,
		"tier":     string(tier),
	})
	return nil
}
