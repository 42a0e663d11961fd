package social

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

// SendFriendRequest creates a pending request. When an edge already exists
// in either direction it is returned unchanged.
func (s *Service) SendFriendRequest(ctx context.Context, actor entity.Actor, targetID uint64) (*entity.Friendship, error) {
	var (
		edge      *entity.Friendship
		created   bool
		requester *entity.User
		target    *entity.User
	)

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		requester, target, err = s.pair(txCtx, actor.UserID, targetID)
		if err != nil {
			return err
		}
		if err := s.ensureNotBlocked(txCtx, actor.UserID, targetID); err != nil {
			return err
		}

		friendships := s.uow.GetFriendshipRepository(txCtx)
		edge, err = friendships.FindBetween(txCtx, actor.UserID, targetID)
		if err != nil || edge != nil {
			return err
		}

		edge = &entity.Friendship{
			RequesterID: actor.UserID,
			AddresseeID: targetID,
			Status:      entity.FriendshipPending,
			CreatedAt:   s.timeProvider.Now(),
		}
		created, err = friendships.Create(txCtx, edge)
		if err != nil {
			return err
		}
		if !created {
			// lost a race with a concurrent request
			edge, err = friendships.FindBetween(txCtx, actor.UserID, targetID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info("Friend request sent", map[string]any{
			"request_id":   edge.ID,
			"requester_id": actor.UserID,
			"addressee_id": targetID,
		})
		s.notify(ctx, coreport.Notification{
			Kind:        coreport.NotifyFriendRequest,
			RecipientID: targetID,
			Email:       target.Email,
			Subject:     "New friend request",
			Body:        fmt.Sprintf("%s sent you a friend request.", requester.Username),
			Data: map[string]any{
				"request_id":   edge.ID,
				"requester_id": actor.UserID,
			},
		})
	}
	return edge, nil
}

// AcceptFriendRequest lets the addressee accept a pending request
func (s *Service) AcceptFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) (*entity.Friendship, error) {
	friendships := s.uow.GetFriendshipRepository(ctx)
	edge, err := friendships.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if edge.AddresseeID != actor.UserID {
		return nil, errs.ErrUnauthorized
	}
	if edge.Status == entity.FriendshipAccepted {
		return edge, nil
	}

	if err := friendships.Accept(ctx, requestID); err != nil {
		return nil, err
	}
	edge.Status = entity.FriendshipAccepted

	s.logger.Info("Friend request accepted", map[string]any{
		"request_id":   requestID,
		"requester_id": edge.RequesterID,
		"addressee_id": edge.AddresseeID,
	})
	return edge, nil
}

// RejectFriendRequest deletes a pending request. The addressee rejects it,
// the requester cancels it.
func (s *Service) RejectFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) error {
	friendships := s.uow.GetFriendshipRepository(ctx)
	edge, err := friendships.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !edge.Involves(actor.UserID) {
		return errs.ErrUnauthorized
	}
	if edge.Status != entity.FriendshipPending {
		return errs.ErrFriendRequestNotFound
	}

	deleted, err := friendships.DeletePending(ctx, requestID)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.ErrFriendRequestNotFound
	}

	s.logger.Info("Friend request removed", map[string]any{
		"request_id": requestID,
		"removed_by": actor.UserID,
	})
	return nil
}

// RemoveFriend deletes the friendship in both directions
func (s *Service) RemoveFriend(ctx context.Context, actor entity.Actor, otherID uint64) error {
	if otherID == actor.UserID {
		return errs.ErrSelfRelation
	}
	removed, err := s.uow.GetFriendshipRepository(ctx).DeleteBetween(ctx, actor.UserID, otherID)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Info("Friendship removed", map[string]any{
			"user_id":  actor.UserID,
			"other_id": otherID,
		})
	}
	return nil
}

func (s *Service) ListFriends(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	return s.uow.GetFriendshipRepository(ctx).ListFriends(ctx, actor.UserID)
}

// ListPendingRequests returns requests waiting for the actor's answer
func (s *Service) ListPendingRequests(ctx context.Context, actor entity.Actor) ([]*entity.FriendRequest, error) {
	return s.uow.GetFriendshipRepository(ctx).ListIncoming(ctx, actor.UserID)
}
