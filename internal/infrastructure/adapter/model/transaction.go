package model

import (
	"time"
)

// Transaction is an append-only wallet audit row
type Transaction struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index:idx_transactions_user_created,priority:1"`
	Type         string    `gorm:"size:32;not null"`
	Amount       int64     `gorm:"not null"` // signed cents
	BalanceAfter int64     `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index:idx_transactions_user_created,priority:2,sort:desc"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
