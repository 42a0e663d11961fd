package model

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a shop listing
type Product struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement"`
	OwnerID     uint64         `gorm:"not null;index"`
	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	Price       int64          `gorm:"not null;check:chk_products_price,price >= 0"` // cents
	Type        string         `gorm:"size:16;not null;default:normal"`
	ImageURLs   datatypes.JSON `gorm:"type:jsonb"`
	FileURL     string         `gorm:"size:1024"`
	CreatedAt   time.Time      `gorm:"not null;index"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// Purchase is one product bought at checkout.
// product_id carries no foreign key so history survives product deletion.
type Purchase struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index:idx_purchases_user_time,priority:1"`
	ProductID   uint64    `gorm:"not null"`
	PricePaid   int64     `gorm:"not null"`
	PurchasedAt time.Time `gorm:"not null;index:idx_purchases_user_time,priority:2,sort:desc"`

	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Purchase
func (Purchase) TableName() string {
	return "purchases"
}

// CartItem is a product waiting in a user's cart
type CartItem struct {
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	ProductID uint64    `gorm:"primaryKey;autoIncrement:false"`
	AddedAt   time.Time `gorm:"not null"`

	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Product Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}
