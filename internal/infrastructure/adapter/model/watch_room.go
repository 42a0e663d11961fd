package model

import (
	"time"
)

// WatchRoom holds the shared playback state of a room
type WatchRoom struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	HostID       uint64    `gorm:"not null;index"`
	RoomName     string    `gorm:"size:255;not null"`
	VideoID      string    `gorm:"size:64;not null"`
	PlaybackTime float64   `gorm:"not null;default:0;check:chk_watch_rooms_playback_time,playback_time >= 0"` // seconds
	IsPlaying    bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null;index"`
	IsPrivate    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	Host User `gorm:"foreignKey:HostID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for WatchRoom
func (WatchRoom) TableName() string {
	return "watch_rooms"
}

// WatchParticipant is roster membership of a room
type WatchParticipant struct {
	RoomID   uint64    `gorm:"primaryKey;autoIncrement:false"`
	UserID   uint64    `gorm:"primaryKey;autoIncrement:false;index"`
	JoinedAt time.Time `gorm:"not null"`

	Room WatchRoom `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE"`
	User User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for WatchParticipant
func (WatchParticipant) TableName() string {
	return "watch_participants"
}
