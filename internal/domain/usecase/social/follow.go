package social

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// Follow creates a follow edge. Following needs a paid tier on both sides;
// otherwise the call reports false without an error.
func (s *Service) Follow(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error) {
	var created bool
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		follower, target, err := s.pair(txCtx, actor.UserID, targetID)
		if err != nil {
			return err
		}

		if !follower.HasPaidTier() || !target.HasPaidTier() {
			s.logger.Debug("Follow skipped for unpaid tier", map[string]any{
				"follower_id":  actor.UserID,
				"following_id": targetID,
			})
			return nil
		}

		if err := s.ensureNotBlocked(txCtx, actor.UserID, targetID); err != nil {
			return err
		}

		created, err = s.uow.GetFollowerRepository(txCtx).Create(txCtx, actor.UserID, targetID)
		return err
	})
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("User followed", map[string]any{
			"follower_id":  actor.UserID,
			"following_id": targetID,
		})
	}
	return created, nil
}

// Unfollow removes the follow edge if present
func (s *Service) Unfollow(ctx context.Context, actor entity.Actor, targetID uint64) error {
	if targetID == actor.UserID {
		return errs.ErrSelfRelation
	}
	_, err := s.uow.GetFollowerRepository(ctx).Delete(ctx, actor.UserID, targetID)
	return err
}

func (s *Service) ListFollowers(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	return s.uow.GetFollowerRepository(ctx).ListFollowers(ctx, actor.UserID)
}

func (s *Service) ListFollowing(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	return s.uow.GetFollowerRepository(ctx).ListFollowing(ctx, actor.UserID)
}
