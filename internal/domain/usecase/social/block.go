package social

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// BlockUser blocks the target and removes every friendship and follow edge
// between the two users in the same unit of work
func (s *Service) BlockUser(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error) {
	var (
		created            bool
		friendshipsRemoved int64
		followsRemoved     int64
	)
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		if _, _, err := s.pair(txCtx, actor.UserID, targetID); err != nil {
			return err
		}

		var err error
		created, err = s.uow.GetBlockRepository(txCtx).Create(txCtx, actor.UserID, targetID)
		if err != nil {
			return err
		}

		friendshipsRemoved, err = s.uow.GetFriendshipRepository(txCtx).DeleteBetween(txCtx, actor.UserID, targetID)
		if err != nil {
			return err
		}
		followsRemoved, err = s.uow.GetFollowerRepository(txCtx).DeleteBetween(txCtx, actor.UserID, targetID)
		return err
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("User blocked", map[string]any{
		"user_id":             actor.UserID,
		"blocked_user_id":     targetID,
		"created":             created,
		"friendships_removed": friendshipsRemoved,
		"follows_removed":     followsRemoved,
	})
	return created, nil
}

// UnblockUser removes the block if present
func (s *Service) UnblockUser(ctx context.Context, actor entity.Actor, targetID uint64) error {
	if targetID == actor.UserID {
		return errs.ErrSelfRelation
	}
	_, err := s.uow.GetBlockRepository(ctx).Delete(ctx, actor.UserID, targetID)
	return err
}

func (s *Service) ListBlocked(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	return s.uow.GetBlockRepository(ctx).ListBlocked(ctx, actor.UserID)
}
