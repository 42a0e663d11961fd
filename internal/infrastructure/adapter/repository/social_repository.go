package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// summaryRow is the projection shared by every graph listing
type summaryRow struct {
	ID              uint64
	Username        string
	Subscription    string
	IsFollowingBack bool
	Since           time.Time
}

func summariesFrom(rows []summaryRow) []*entity.UserSummary {
	out := make([]*entity.UserSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.UserSummary{
			ID:              row.ID,
			Username:        row.Username,
			Subscription:    entity.Tier(row.Subscription),
			IsFollowingBack: row.IsFollowingBack,
			Since:           row.Since,
		})
	}
	return out
}

// insertEdge runs an ON CONFLICT DO NOTHING insert and reports whether a row was added
func insertEdge(ctx context.Context, db *gorm.DB, row any) (bool, error) {
	result := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		if pgCode(result.Error) == pgForeignKeyViolation {
			return false, errs.ErrUserNotFound
		}
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// FriendshipRepository implements FriendshipRepository using GORM
type FriendshipRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewFriendshipRepository creates a new FriendshipRepository instance
func NewFriendshipRepository(db *gorm.DB, logger coreport.Logger) *FriendshipRepository {
	return &FriendshipRepository{db: db, logger: logger}
}

func friendshipToEntity(m *model.Friendship) *entity.Friendship {
	return &entity.Friendship{
		ID:          m.ID,
		RequesterID: m.RequesterID,
		AddresseeID: m.AddresseeID,
		Status:      entity.FriendshipStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

// GetByID returns ErrFriendRequestNotFound when the row doesn't exist
func (r *FriendshipRepository) GetByID(ctx context.Context, id uint64) (*entity.Friendship, error) {
	var row model.Friendship
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFriendRequestNotFound
		}
		return nil, wrapDatabaseError(err)
	}
	return friendshipToEntity(&row), nil
}

// FindBetween returns the edge in either direction, or nil
func (r *FriendshipRepository) FindBetween(ctx context.Context, a, b uint64) (*entity.Friendship, error) {
	var rows []model.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		Order("id").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return friendshipToEntity(&rows[0]), nil
}

// Create inserts a pending edge; the unordered-pair unique index makes a
// reverse-direction duplicate a conflict too
func (r *FriendshipRepository) Create(ctx context.Context, friendship *entity.Friendship) (bool, error) {
	row := model.Friendship{
		RequesterID: friendship.RequesterID,
		AddresseeID: friendship.AddresseeID,
		Status:      string(friendship.Status),
		CreatedAt:   friendship.CreatedAt,
	}
	created, err := insertEdge(ctx, r.db, &row)
	if err != nil || !created {
		return false, err
	}
	friendship.ID = row.ID
	return true, nil
}

// Accept flips a pending edge to accepted
func (r *FriendshipRepository) Accept(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("id = ?", id).
		UpdateColumn("status", string(entity.FriendshipAccepted))
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrFriendRequestNotFound
	}
	return nil
}

// DeletePending removes the edge only while it is still pending
func (r *FriendshipRepository) DeletePending(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(entity.FriendshipPending)).
		Delete(&model.Friendship{})
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBetween removes edges in both directions
func (r *FriendshipRepository) DeleteBetween(ctx context.Context, a, b uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		Delete(&model.Friendship{})
	if result.Error != nil {
		return 0, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}

// ListFriends returns accepted friends of the user
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.subscription, f.created_at AS since,
		       EXISTS (SELECT 1 FROM followers fo WHERE fo.follower_id = u.id AND fo.following_id = ?) AS is_following_back
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.requester_id = ? THEN f.addressee_id ELSE f.requester_id END
		WHERE f.status = ? AND (f.requester_id = ? OR f.addressee_id = ?)
		ORDER BY u.username`,
		userID, userID, string(entity.FriendshipAccepted), userID, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return summariesFrom(rows), nil
}

// ListIncoming returns pending requests addressed to the user, oldest first
func (r *FriendshipRepository) ListIncoming(ctx context.Context, userID uint64) ([]*entity.FriendRequest, error) {
	var rows []struct {
		ID                uint64
		RequesterID       uint64
		RequesterUsername string
		CreatedAt         time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.id, f.requester_id, u.username AS requester_username, f.created_at
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.addressee_id = ? AND f.status = ?
		ORDER BY f.created_at, f.id`,
		userID, string(entity.FriendshipPending)).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	requests := make([]*entity.FriendRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, &entity.FriendRequest{
			ID:                row.ID,
			RequesterID:       row.RequesterID,
			RequesterUsername: row.RequesterUsername,
			CreatedAt:         row.CreatedAt,
		})
	}
	return requests, nil
}

// AreFriends reports an accepted edge in either direction
func (r *FriendshipRepository) AreFriends(ctx context.Context, a, b uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Friendship{}).
		Where("status = ? AND ((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?))",
			string(entity.FriendshipAccepted), a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, wrapDatabaseError(err)
	}
	return count > 0, nil
}

// FollowerRepository implements FollowerRepository using GORM
type FollowerRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
}

// NewFollowerRepository creates a new FollowerRepository instance
func NewFollowerRepository(db *gorm.DB, timeProvider coreport.TimeProvider) *FollowerRepository {
	return &FollowerRepository{db: db, timeProvider: timeProvider}
}

// Create reports false when the edge already exists
func (r *FollowerRepository) Create(ctx context.Context, followerID, followingID uint64) (bool, error) {
	return insertEdge(ctx, r.db, &model.Follower{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   r.timeProvider.Now(),
	})
}

// Delete removes a single follow edge
func (r *FollowerRepository) Delete(ctx context.Context, followerID, followingID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follower{})
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteBetween removes follow edges in both directions
func (r *FollowerRepository) DeleteBetween(ctx context.Context, a, b uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)", a, b, b, a).
		Delete(&model.Follower{})
	if result.Error != nil {
		return 0, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected, nil
}

// ListFollowers returns users following userID
func (r *FollowerRepository) ListFollowers(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.subscription, fo.created_at AS since,
		       EXISTS (SELECT 1 FROM followers back WHERE back.follower_id = ? AND back.following_id = u.id) AS is_following_back
		FROM followers fo
		JOIN users u ON u.id = fo.follower_id
		WHERE fo.following_id = ?
		ORDER BY fo.created_at DESC`, userID, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return summariesFrom(rows), nil
}

// ListFollowing returns users followed by userID
func (r *FollowerRepository) ListFollowing(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.subscription, fo.created_at AS since,
		       EXISTS (SELECT 1 FROM followers back WHERE back.follower_id = u.id AND back.following_id = ?) AS is_following_back
		FROM followers fo
		JOIN users u ON u.id = fo.following_id
		WHERE fo.follower_id = ?
		ORDER BY fo.created_at DESC`, userID, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return summariesFrom(rows), nil
}

// BlockRepository implements BlockRepository using GORM
type BlockRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
}

// NewBlockRepository creates a new BlockRepository instance
func NewBlockRepository(db *gorm.DB, timeProvider coreport.TimeProvider) *BlockRepository {
	return &BlockRepository{db: db, timeProvider: timeProvider}
}

// Create reports false when the block already exists
func (r *BlockRepository) Create(ctx context.Context, userID, blockedUserID uint64) (bool, error) {
	return insertEdge(ctx, r.db, &model.BlockedUser{
		UserID:        userID,
		BlockedUserID: blockedUserID,
		CreatedAt:     r.timeProvider.Now(),
	})
}

// Delete lifts a block
func (r *BlockRepository) Delete(ctx context.Context, userID, blockedUserID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND blocked_user_id = ?", userID, blockedUserID).
		Delete(&model.BlockedUser{})
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// IsBlockedEither reports a block in either direction
func (r *BlockRepository) IsBlockedEither(ctx context.Context, a, b uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlockedUser{}).
		Where("(user_id = ? AND blocked_user_id = ?) OR (user_id = ? AND blocked_user_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, wrapDatabaseError(err)
	}
	return count > 0, nil
}

// ListBlocked returns the users blocked by userID
func (r *BlockRepository) ListBlocked(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	var rows []summaryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.subscription, b.created_at AS since
		FROM blocked_users b
		JOIN users u ON u.id = b.blocked_user_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return summariesFrom(rows), nil
}
