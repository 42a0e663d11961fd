package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository implements ProductRepository using GORM
type ProductRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *ProductRepository) toEntity(m *model.Product) *entity.Product {
	product := &entity.Product{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Type:        entity.ProductType(m.Type),
		FileURL:     m.FileURL,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.ImageURLs) > 0 {
		if err := json.Unmarshal(m.ImageURLs, &product.ImageURLs); err != nil {
			r.logger.Warn("Ignoring malformed product images", map[string]any{
				"product_id": m.ID,
				"error":      err.Error(),
			})
		}
	}
	return product
}

// Create inserts the product and fills in its ID
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	images := product.ImageURLs
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return errs.ErrInvalidRequest
	}

	row := model.Product{
		OwnerID:     product.OwnerID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Type:        string(product.Type),
		ImageURLs:   datatypes.JSON(encoded),
		FileURL:     product.FileURL,
		CreatedAt:   product.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		r.logger.Error("Failed to create product", map[string]any{
			"owner_id": product.OwnerID,
			"error":    err.Error(),
		})
		if pgCode(err) == pgForeignKeyViolation {
			return errs.ErrUserNotFound
		}
		return r.errorClassifier.mapWriteError(err)
	}

	product.ID = row.ID
	return nil
}

// GetByID returns ErrProductNotFound when the product doesn't exist
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var row model.Product
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, wrapDatabaseError(err)
	}
	return r.toEntity(&row), nil
}

// GetByIDs returns the products that still exist, in id order
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uint64) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}
	return r.toEntities(rows), nil
}

// List pages through the catalogue, newest first
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var rows []model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}
	return r.toEntities(rows), nil
}

// CountByOwner counts the products listed by a user
func (r *ProductRepository) CountByOwner(ctx context.Context, ownerID uint64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, wrapDatabaseError(err)
	}
	return count, nil
}

// Delete returns ErrProductNotFound when nothing was removed.
// Cart items referencing the product go with it.
func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) toEntities(rows []model.Product) []*entity.Product {
	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, r.toEntity(&rows[i]))
	}
	return products
}

// PurchaseRepository implements PurchaseRepository using GORM
type PurchaseRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewPurchaseRepository creates a new PurchaseRepository instance
func NewPurchaseRepository(db *gorm.DB, logger coreport.Logger) *PurchaseRepository {
	return &PurchaseRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// CreateBatch inserts one row per purchase and fills in the IDs
func (r *PurchaseRepository) CreateBatch(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	rows := make([]model.Purchase, len(purchases))
	for i, p := range purchases {
		rows[i] = model.Purchase{
			UserID:      p.UserID,
			ProductID:   p.ProductID,
			PricePaid:   p.PricePaid,
			PurchasedAt: p.PurchasedAt,
		}
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		r.logger.Error("Failed to record purchases", map[string]any{
			"user_id": purchases[0].UserID,
			"items":   len(purchases),
			"error":   err.Error(),
		})
		return r.errorClassifier.mapWriteError(err)
	}

	for i := range rows {
		purchases[i].ID = rows[i].ID
	}
	return nil
}

type purchaseRow struct {
	ID          uint64
	UserID      uint64
	ProductID   uint64
	PricePaid   int64
	PurchasedAt time.Time
	ProductName string
	ProductType string
}

// ListByUser returns purchases with product details, newest first.
// Deleted products keep their purchase rows with empty details.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Purchase, error) {
	var rows []purchaseRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT pu.id, pu.user_id, pu.product_id, pu.price_paid, pu.purchased_at,
		       COALESCE(p.name, '') AS product_name, COALESCE(p.type, '') AS product_type
		FROM purchases pu
		LEFT JOIN products p ON p.id = pu.product_id
		WHERE pu.user_id = ?
		ORDER BY pu.purchased_at DESC, pu.id DESC`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	purchases := make([]*entity.Purchase, 0, len(rows))
	for _, row := range rows {
		purchases = append(purchases, &entity.Purchase{
			ID:          row.ID,
			UserID:      row.UserID,
			ProductID:   row.ProductID,
			PricePaid:   row.PricePaid,
			PurchasedAt: row.PurchasedAt,
			ProductName: row.ProductName,
			ProductType: entity.ProductType(row.ProductType),
		})
	}
	return purchases, nil
}

// CartRepository implements CartRepository using GORM
type CartRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewCartRepository creates a new CartRepository instance
func NewCartRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CartRepository {
	return &CartRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Load returns the user's cart in insertion order
func (r *CartRepository) Load(ctx context.Context, userID uint64) (*entity.Cart, error) {
	return r.load(r.db.WithContext(ctx), userID)
}

// LoadForUpdate locks the cart rows so a concurrent checkout of the same
// cart waits and then sees what this one left behind
func (r *CartRepository) LoadForUpdate(ctx context.Context, userID uint64) (*entity.Cart, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *CartRepository) load(db *gorm.DB, userID uint64) (*entity.Cart, error) {
	var rows []model.CartItem
	err := db.
		Where("user_id = ?", userID).
		Order("added_at, product_id").
		Find(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	cart := entity.NewCart(userID)
	for _, row := range rows {
		cart.Add(row.ProductID, row.AddedAt)
	}
	return cart, nil
}

// AddItem inserts the item unless present
func (r *CartRepository) AddItem(ctx context.Context, userID, productID uint64) (bool, error) {
	row := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   r.timeProvider.Now(),
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		if pgCode(result.Error) == pgForeignKeyViolation {
			return false, errs.ErrProductNotFound
		}
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveItem reports whether a row was removed
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveItems deletes the listed products from the cart
func (r *CartRepository) RemoveItems(ctx context.Context, userID uint64, productIDs []uint64) error {
	if len(productIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&model.CartItem{}).Error
	if err != nil {
		return wrapDatabaseError(err)
	}
	return nil
}
