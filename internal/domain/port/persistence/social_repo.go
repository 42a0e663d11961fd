package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// FriendshipRepository manages friendship edges
type FriendshipRepository interface {
	// GetByID returns ErrFriendRequestNotFound when the row doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Friendship, error)

	// FindBetween returns the edge in either direction, or nil
	FindBetween(ctx context.Context, a, b uint64) (*entity.Friendship, error)

	// Create inserts a pending edge. It reports false when an edge for the
	// same pair already exists.
	Create(ctx context.Context, friendship *entity.Friendship) (bool, error)

	// Accept flips a pending edge to accepted
	Accept(ctx context.Context, id uint64) error

	// DeletePending removes the edge only while it is still pending
	DeletePending(ctx context.Context, id uint64) (bool, error)

	// DeleteBetween removes edges in both directions
	DeleteBetween(ctx context.Context, a, b uint64) (int64, error)

	// ListFriends returns accepted friends of the user
	ListFriends(ctx context.Context, userID uint64) ([]*entity.UserSummary, error)

	// ListIncoming returns pending requests addressed to the user
	ListIncoming(ctx context.Context, userID uint64) ([]*entity.FriendRequest, error)

	AreFriends(ctx context.Context, a, b uint64) (bool, error)
}

// FollowerRepository manages follow edges
type FollowerRepository interface {
	// Create reports false when the edge already exists
	Create(ctx context.Context, followerID, followingID uint64) (bool, error)

	Delete(ctx context.Context, followerID, followingID uint64) (bool, error)

	// DeleteBetween removes follow edges in both directions
	DeleteBetween(ctx context.Context, a, b uint64) (int64, error)

	ListFollowers(ctx context.Context, userID uint64) ([]*entity.UserSummary, error)

	ListFollowing(ctx context.Context, userID uint64) ([]*entity.UserSummary, error)
}

// BlockRepository manages block edges
type BlockRepository interface {
	// Create reports false when the block already exists
	Create(ctx context.Context, userID, blockedUserID uint64) (bool, error)

	Delete(ctx context.Context, userID, blockedUserID uint64) (bool, error)

	// IsBlockedEither reports a block in either direction
	IsBlockedEither(ctx context.Context, a, b uint64) (bool, error)

	ListBlocked(ctx context.Context, userID uint64) ([]*entity.UserSummary, error)
}
