package model

import (
	"time"
)

// Friendship is a directed friend request edge
type Friendship struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	RequesterID uint64    `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:1"`
	AddresseeID uint64    `gorm:"not null;uniqueIndex:idx_friendships_pair,priority:2;index"`
	Status      string    `gorm:"size:16;not null;default:pending"`
	CreatedAt   time.Time `gorm:"not null"`

	Requester User `gorm:"foreignKey:RequesterID;references:ID;constraint:OnDelete:CASCADE"`
	Addressee User `gorm:"foreignKey:AddresseeID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Friendship
func (Friendship) TableName() string {
	return "friendships"
}

// Follower is a directed follow edge
type Follower struct {
	FollowerID  uint64    `gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint64    `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `gorm:"not null"`

	FollowerUser  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnDelete:CASCADE"`
	FollowingUser User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Follower
func (Follower) TableName() string {
	return "followers"
}

// BlockedUser is a directed block edge
type BlockedUser struct {
	UserID        uint64    `gorm:"primaryKey;autoIncrement:false"`
	BlockedUserID uint64    `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt     time.Time `gorm:"not null"`

	User    User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Blocked User `gorm:"foreignKey:BlockedUserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for BlockedUser
func (BlockedUser) TableName() string {
	return "blocked_users"
}
