package entity

import (
	"io"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// ProductType distinguishes regular items from sticker packs
type ProductType string

// Product types
const (
	ProductNormal  ProductType = "normal"
	ProductSticker ProductType = "sticker"
)

// MaxProductImages is the number of gallery images a product may carry
const MaxProductImages = 5

// ParseProductType converts user input into a product type, defaulting to normal
func ParseProductType(value string) (ProductType, error) {
	switch ProductType(strings.ToLower(strings.TrimSpace(value))) {
	case "", ProductNormal:
		return ProductNormal, nil
	case ProductSticker:
		return ProductSticker, nil
	default:
		return "", errs.ErrInvalidRequest
	}
}

// Product is an item listed in the shop
type Product struct {
	ID          uint64
	OwnerID     uint64
	Name        string
	Description string
	Price       int64 // cents
	Type        ProductType
	ImageURLs   []string
	FileURL     string
	CreatedAt   time.Time
}

// GetPrice returns the price formatted with 2 decimal places
func (p *Product) GetPrice() string {
	return AmountInCentsToString(p.Price)
}

// Upload is a file handed to the shop for storage
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// NewProduct carries the input of a product creation
type NewProduct struct {
	Name        string
	Description string
	Price       int64
	Type        ProductType
	Images      []Upload
	File        *Upload
}

// Validate checks the product input before any file or row is written
func (n NewProduct) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return errs.ErrInvalidRequest
	}
	if n.Price < 0 {
		return errs.ErrNegativeAmount
	}
	if len(n.Images) > MaxProductImages {
		return errs.ErrInvalidRequest
	}
	return nil
}

// Purchase records one product bought at checkout
type Purchase struct {
	ID          uint64
	UserID      uint64
	ProductID   uint64
	PricePaid   int64 // cents
	PurchasedAt time.Time

	// Filled by listing queries
	ProductName string
	ProductType ProductType
}

// GetPricePaid returns the charged price formatted with 2 decimal places
func (p *Purchase) GetPricePaid() string {
	return AmountInCentsToString(p.PricePaid)
}
