package model

import (
	"time"
)

// MigrationVersion records an applied schema migration
type MigrationVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	AppliedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	Details   string    `gorm:"type:text"`
}

// TableName specifies the table name for the migration version model
func (MigrationVersion) TableName() string {
	return "migration_versions"
}

// All returns every table model in creation order
func All() []any {
	return []any{
		&User{},
		&Transaction{},
		&Product{},
		&Purchase{},
		&CartItem{},
		&Friendship{},
		&Follower{},
		&BlockedUser{},
		&WatchRoom{},
		&WatchParticipant{},
	}
}
