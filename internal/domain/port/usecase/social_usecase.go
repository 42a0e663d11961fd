package usecase

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// SocialUseCase defines friendship, follow and block operations
type SocialUseCase interface {
	SendFriendRequest(ctx context.Context, actor entity.Actor, targetID uint64) (*entity.Friendship, error)
	AcceptFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) (*entity.Friendship, error)
	RejectFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) error
	RemoveFriend(ctx context.Context, actor entity.Actor, otherID uint64) error

	Follow(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error)
	Unfollow(ctx context.Context, actor entity.Actor, targetID uint64) error

	BlockUser(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error)
	UnblockUser(ctx context.Context, actor entity.Actor, targetID uint64) error

	ListFriends(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error)
	ListPendingRequests(ctx context.Context, actor entity.Actor) ([]*entity.FriendRequest, error)
	ListFollowers(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error)
	ListFollowing(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error)
	ListBlocked(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error)

	RelationshipStatus(ctx context.Context, actor entity.Actor, otherID uint64) (entity.RelationshipStatus, error)
}
