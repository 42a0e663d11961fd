package entity

import "time"

// FriendshipStatus is the state of a directed friendship edge
type FriendshipStatus string

// Friendship states
const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed friend request that may be accepted
type Friendship struct {
	ID          uint64
	RequesterID uint64
	AddresseeID uint64
	Status      FriendshipStatus
	CreatedAt   time.Time
}

// Involves reports whether the user is either end of the edge
func (f *Friendship) Involves(userID uint64) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// OtherParty returns the user at the opposite end from userID
func (f *Friendship) OtherParty(userID uint64) uint64 {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}

// Follower is a directed follow edge
type Follower struct {
	FollowerID  uint64
	FollowingID uint64
	CreatedAt   time.Time
}

// BlockedUser is a directed block edge
type BlockedUser struct {
	UserID        uint64
	BlockedUserID uint64
	CreatedAt     time.Time
}

// RelationshipStatus summarises the friendship between the actor and another user
type RelationshipStatus string

// Relationship states as seen by the actor
const (
	RelationshipNone            RelationshipStatus = "none"
	RelationshipPendingSent     RelationshipStatus = "pending_sent"
	RelationshipPendingReceived RelationshipStatus = "pending_received"
	RelationshipFriends         RelationshipStatus = "friends"
	RelationshipBlocked         RelationshipStatus = "blocked"
)

// StatusFor derives the relationship state of viewerID from an edge, which may be nil
func StatusFor(edge *Friendship, viewerID uint64) RelationshipStatus {
	switch {
	case edge == nil:
		return RelationshipNone
	case edge.Status == FriendshipAccepted:
		return RelationshipFriends
	case edge.RequesterID == viewerID:
		return RelationshipPendingSent
	default:
		return RelationshipPendingReceived
	}
}

// UserSummary is a lightweight user projection for graph listings
type UserSummary struct {
	ID              uint64
	Username        string
	Subscription    Tier
	IsFollowingBack bool
	Since           time.Time
}

// FriendRequest is an incoming pending request with the requester's name
type FriendRequest struct {
	ID                uint64
	RequesterID       uint64
	RequesterUsername string
	CreatedAt         time.Time
}
