package dto

import (
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// TargetUserRequest names the user an action applies to
type TargetUserRequest struct {
	UserID uint64 `json:"userId" binding:"required"`
}

// FriendshipResponse is a friendship edge
type FriendshipResponse struct {
	ID          uint64    `json:"id"`
	RequesterID uint64    `json:"requesterId"`
	AddresseeID uint64    `json:"addresseeId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserSummaryResponse is a user in a social list
type UserSummaryResponse struct {
	ID              uint64    `json:"id"`
	Username        string    `json:"username"`
	Subscription    string    `json:"subscription"`
	IsFollowingBack bool      `json:"isFollowingBack"`
	Since           time.Time `json:"since"`
}

// FriendRequestResponse is an incoming pending request
type FriendRequestResponse struct {
	ID                uint64    `json:"id"`
	RequesterID       uint64    `json:"requesterId"`
	RequesterUsername string    `json:"requesterUsername"`
	CreatedAt         time.Time `json:"createdAt"`
}

// EdgeResponse reports whether an idempotent call changed anything
type EdgeResponse struct {
	Changed bool `json:"changed"`
}

// RelationshipResponse describes how the caller relates to another user
type RelationshipResponse struct {
	UserID uint64 `json:"userId"`
	Status string `json:"status"`
}

// NewFriendshipResponse maps a friendship
func NewFriendshipResponse(f *entity.Friendship) FriendshipResponse {
	return FriendshipResponse{
		ID:          f.ID,
		RequesterID: f.RequesterID,
		AddresseeID: f.AddresseeID,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
	}
}

// NewUserSummaryList maps a social list
func NewUserSummaryList(users []*entity.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummaryResponse{
			ID:              u.ID,
			Username:        u.Username,
			Subscription:    string(u.Subscription),
			IsFollowingBack: u.IsFollowingBack,
			Since:           u.Since,
		})
	}
	return out
}

// NewFriendRequestList maps pending requests
func NewFriendRequestList(requests []*entity.FriendRequest) []FriendRequestResponse {
	out := make([]FriendRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, FriendRequestResponse{
			ID:                r.ID,
			RequesterID:       r.RequesterID,
			RequesterUsername: r.RequesterUsername,
			CreatedAt:         r.CreatedAt,
		})
	}
	return out
}
