package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// maxUploadMemory is the multipart memory budget before spilling to disk
const maxUploadMemory = 32 << 20

// CommerceHandler handles catalogue, cart, checkout and subscription requests
type CommerceHandler struct {
	commerce usecase.CommerceUseCase
	logger   coreport.Logger
}

// NewCommerceHandler creates a new commerce handler instance
func NewCommerceHandler(commerce usecase.CommerceUseCase, logger coreport.Logger) *CommerceHandler {
	return &CommerceHandler{commerce: commerce, logger: logger}
}

// ListProducts handles GET /products?limit=&offset=
func (h *CommerceHandler) ListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	products, err := h.commerce.ListProducts(c.Request.Context(), limit, max(offset, 0))
	if err != nil {
		respondError(c, h.logger, "list_products", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(products))
}

// GetProduct handles GET /products/:productId
func (h *CommerceHandler) GetProduct(c *gin.Context) {
	productID, ok := idParam(c, "productId", errs.ErrProductNotFound)
	if !ok {
		return
	}
	product, err := h.commerce.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, h.logger, "get_product", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// CreateProduct handles multipart POST /products with fields name,
// description, price, type and files images (repeatable) and file
func (h *CommerceHandler) CreateProduct(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		badRequest(c, errs.ErrInvalidRequest, "Invalid multipart form: "+err.Error())
		return
	}

	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		respondError(c, h.logger, "create_product", err)
		return
	}
	productType, err := entity.ParseProductType(c.PostForm("type"))
	if err != nil {
		respondError(c, h.logger, "create_product", err)
		return
	}

	req := entity.NewProduct{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Type:        productType,
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	open := func(fh *multipart.FileHeader) (entity.Upload, error) {
		f, err := fh.Open()
		if err != nil {
			return entity.Upload{}, fmt.Errorf("%w: unreadable upload %s", errs.ErrInvalidRequest, fh.Filename)
		}
		opened = append(opened, f)
		return entity.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		}, nil
	}

	if form := c.Request.MultipartForm; form != nil {
		for _, fh := range form.File["images"] {
			upload, err := open(fh)
			if err != nil {
				respondError(c, h.logger, "create_product", err)
				return
			}
			req.Images = append(req.Images, upload)
		}
		if files := form.File["file"]; len(files) > 0 {
			upload, err := open(files[0])
			if err != nil {
				respondError(c, h.logger, "create_product", err)
				return
			}
			req.File = &upload
		}
	}

	product, err := h.commerce.CreateProduct(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, h.logger, "create_product", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// parsePrice accepts an empty or zero price for free products
func parsePrice(raw string) (int64, error) {
	if raw == "" || raw == "0" || raw == "0.00" {
		return 0, nil
	}
	return dto.ParseAmount(raw)
}

// DeleteProduct handles DELETE /products/:productId
func (h *CommerceHandler) DeleteProduct(c *gin.Context) {
	productID, ok := idParam(c, "productId", errs.ErrProductNotFound)
	if !ok {
		return
	}
	if err := h.commerce.DeleteProduct(c.Request.Context(), actor(c), productID); err != nil {
		respondError(c, h.logger, "delete_product", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCart handles GET /cart
func (h *CommerceHandler) GetCart(c *gin.Context) {
	view, err := h.commerce.GetCart(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "get_cart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(view))
}

// AddToCart handles POST /cart/items
func (h *CommerceHandler) AddToCart(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	if err := h.commerce.AddToCart(c.Request.Context(), actor(c), req.ProductID); err != nil {
		respondError(c, h.logger, "add_to_cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFromCart handles DELETE /cart/items/:productId
func (h *CommerceHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := idParam(c, "productId", errs.ErrProductNotFound)
	if !ok {
		return
	}
	if err := h.commerce.RemoveFromCart(c.Request.Context(), actor(c), productID); err != nil {
		respondError(c, h.logger, "remove_from_cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handles POST /cart/checkout
func (h *CommerceHandler) Checkout(c *gin.Context) {
	a := actor(c)
	view, err := h.commerce.GetCart(c.Request.Context(), a)
	if err != nil {
		respondError(c, h.logger, "checkout", err)
		return
	}

	result, err := h.commerce.Checkout(c.Request.Context(), a, view.Cart)
	if err != nil {
		respondError(c, h.logger, "checkout", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutResponse(result))
}

// ListPurchases handles GET /purchases
func (h *CommerceHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.commerce.ListPurchases(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "list_purchases", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPurchaseList(purchases))
}

// BuySubscription handles POST /subscription
func (h *CommerceHandler) BuySubscription(c *gin.Context) {
	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	result, err := h.commerce.BuySubscription(c.Request.Context(), actor(c), req.Plan)
	if err != nil {
		respondError(c, h.logger, "buy_subscription", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubscriptionResponse(result))
}

// CancelSubscription handles DELETE /subscription
func (h *CommerceHandler) CancelSubscription(c *gin.Context) {
	result, err := h.commerce.CancelSubscription(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, h.logger, "cancel_subscription", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubscriptionResponse(result))
}

// SetSubscription handles PUT /admin/users/:userId/subscription
func (h *CommerceHandler) SetSubscription(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}
	if err := h.commerce.SetSubscription(c.Request.Context(), actor(c), userID, req.Plan); err != nil {
		respondError(c, h.logger, "set_subscription", err)
		return
	}
	c.Status(http.StatusNoContent)
}
