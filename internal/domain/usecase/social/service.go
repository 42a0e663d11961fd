package social

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// Service implements the social graph
type Service struct {
	uow          persistence.UnitOfWork
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.SocialUseCase = (*Service)(nil)

// NewSocialService creates a new social graph service
func NewSocialService(
	uow persistence.UnitOfWork,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// pair loads and locks the actor and the target, failing when the target is
// missing. Every write that creates or removes an edge between two users runs
// inside a unit of work that starts with pair, so a block and a follow or
// friend request of the same users never interleave.
func (s *Service) pair(ctx context.Context, actorID, targetID uint64) (*entity.User, *entity.User, error) {
	if targetID == 0 {
		return nil, nil, errs.ErrInvalidUserID
	}
	if actorID == targetID {
		return nil, nil, errs.ErrSelfRelation
	}

	users, err := s.uow.GetUserRepository(ctx).LockPair(ctx, actorID, targetID)
	if err != nil {
		return nil, nil, err
	}
	target, ok := users[targetID]
	if !ok {
		return nil, nil, errs.ErrUserNotFound
	}
	actor, ok := users[actorID]
	if !ok {
		return nil, nil, errs.ErrUserNotFound
	}
	return actor, target, nil
}

func (s *Service) ensureNotBlocked(ctx context.Context, a, b uint64) error {
	blocked, err := s.uow.GetBlockRepository(ctx).IsBlockedEither(ctx, a, b)
	if err != nil {
		return err
	}
	if blocked {
		return errs.ErrUserBlocked
	}
	return nil
}

func (s *Service) notify(ctx context.Context, n coreport.Notification) {
	if s.notifier == nil {
		return
	}
	n.CreatedAt = s.timeProvider.Now()
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to send notification", map[string]any{
			"kind":         string(n.Kind),
			"recipient_id": n.RecipientID,
			"error":        err.Error(),
		})
	}
}

// RelationshipStatus describes the edge between the actor and another user
func (s *Service) RelationshipStatus(ctx context.Context, actor entity.Actor, otherID uint64) (entity.RelationshipStatus, error) {
	if otherID == actor.UserID {
		return entity.RelationshipNone, nil
	}

	blocked, err := s.uow.GetBlockRepository(ctx).IsBlockedEither(ctx, actor.UserID, otherID)
	if err != nil {
		return "", err
	}
	if blocked {
		return entity.RelationshipBlocked, nil
	}

	edge, err := s.uow.GetFriendshipRepository(ctx).FindBetween(ctx, actor.UserID, otherID)
	if err != nil {
		return "", err
	}
	return entity.StatusFor(edge, actor.UserID), nil
}
