package dto

import (
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// ProductResponse is a catalogue entry
type ProductResponse struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	Type        string    `json:"type"`
	ImageURLs   []string  `json:"imageUrls"`
	FileURL     string    `json:"fileUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CartItemRequest adds a product to the cart
type CartItemRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
}

// CartResponse is the cart priced at current prices
type CartResponse struct {
	Items []ProductResponse `json:"items"`
	Total string            `json:"total"`
}

// PurchaseResponse is one purchased item
type PurchaseResponse struct {
	ID          uint64    `json:"id"`
	ProductID   uint64    `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	ProductType string    `json:"productType,omitempty"`
	PricePaid   string    `json:"pricePaid"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// CheckoutResponse reports a completed checkout
type CheckoutResponse struct {
	Purchases   []PurchaseResponse  `json:"purchases"`
	Total       string              `json:"total"`
	Transaction TransactionResponse `json:"transaction"`
}

// SubscriptionRequest selects a paid plan
type SubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// SubscriptionResponse reports the tier after a change
type SubscriptionResponse struct {
	Tier        string               `json:"tier"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// NewProductResponse maps a product
func NewProductResponse(p *entity.Product) ProductResponse {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       FormatAmount(p.Price),
		Type:        string(p.Type),
		ImageURLs:   images,
		FileURL:     p.FileURL,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductList maps products
func NewProductList(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// NewPurchaseList maps purchases
func NewPurchaseList(purchases []*entity.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, PurchaseResponse{
			ID:          p.ID,
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			ProductType: string(p.ProductType),
			PricePaid:   FormatAmount(p.PricePaid),
			PurchasedAt: p.PurchasedAt,
		})
	}
	return out
}

// NewCartResponse maps a priced cart
func NewCartResponse(view *usecase.CartView) CartResponse {
	return CartResponse{
		Items: NewProductList(view.Products),
		Total: FormatAmount(view.Total),
	}
}

// NewCheckoutResponse maps a checkout result
func NewCheckoutResponse(result *usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Purchases:   NewPurchaseList(result.Purchases),
		Total:       FormatAmount(result.Total),
		Transaction: NewTransactionResponse(result.Transaction),
	}
}

// NewSubscriptionResponse maps a subscription change
func NewSubscriptionResponse(result *usecase.SubscriptionResult) SubscriptionResponse {
	resp := SubscriptionResponse{Tier: string(result.Tier)}
	if result.Transaction != nil {
		txn := NewTransactionResponse(result.Transaction)
		resp.Transaction = &txn
	}
	return resp
}
