package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID            uint64    `gorm:"primaryKey"`
	Username      string    `gorm:"size:64;not null;uniqueIndex"`
	Email         string    `gorm:"size:255"`
	WalletBalance int64     `gorm:"not null;default:0;check:chk_users_wallet_balance,wallet_balance >= 0"` // cents
	Subscription  string    `gorm:"size:16;not null;default:none"`
	IsPrivate     bool      `gorm:"not null;default:false"`
	AllowMessages bool      `gorm:"not null"`
	IsApproved    bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
