package commerce

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// CreateProduct adds a product for the actor. The tier limit is checked
// before anything is uploaded or inserted.
func (s *Service) CreateProduct(ctx context.Context, actor entity.Actor, req entity.NewProduct) (*entity.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Type == "" {
		req.Type = entity.ProductNormal
	}

	var product *entity.Product
	err := s.ledger.Exclusive(ctx, actor.UserID, func(ctx context.Context) error {
		user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}

		products := s.uow.GetProductRepository(ctx)
		existing, err := products.CountByOwner(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if !user.Subscription.AllowsAnotherProduct(existing) {
			limitErr := &errs.ProductLimitError{
				UserID:   actor.UserID,
				Tier:     string(user.Subscription),
				Limit:    user.Subscription.ProductLimit(),
				Existing: existing,
			}
			s.logger.Warn("Product creation rejected", limitErr.LogFields())
			return limitErr
		}

		uploaded, err := s.upload(ctx, req)
		if err != nil {
			s.discard(ctx, uploaded)
			return err
		}

		product = &entity.Product{
			OwnerID:     actor.UserID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Type:        req.Type,
			ImageURLs:   uploaded.images,
			FileURL:     uploaded.file,
			CreatedAt:   s.timeProvider.Now(),
		}
		if err := products.Create(ctx, product); err != nil {
			s.discard(ctx, uploaded)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Product created successfully", map[string]any{
		"product_id": product.ID,
		"owner_id":   actor.UserID,
		"price":      product.GetPrice(),
		"images":     len(product.ImageURLs),
	})
	return product, nil
}

type uploads struct {
	images []string
	file   string
}

func (u uploads) all() []string {
	urls := append([]string{}, u.images...)
	if u.file != "" {
		urls = append(urls, u.file)
	}
	return urls
}

func (s *Service) upload(ctx context.Context, req entity.NewProduct) (uploads, error) {
	var out uploads
	for _, img := range req.Images {
		url, err := s.storage.Upload(ctx, ProductCategory, img.Filename, img.ContentType, img.Content)
		if err != nil {
			return out, err
		}
		out.images = append(out.images, url)
	}
	if req.File != nil {
		url, err := s.storage.Upload(ctx, ProductCategory, req.File.Filename, req.File.ContentType, req.File.Content)
		if err != nil {
			return out, err
		}
		out.file = url
	}
	return out, nil
}

// discard removes stored files best-effort
func (s *Service) discard(ctx context.Context, u uploads) {
	for _, url := range u.all() {
		if err := s.storage.Delete(ctx, url); err != nil {
			s.logger.Warn("Failed to delete stored file", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
}

// DeleteProduct removes a product owned by the actor, or any product for an admin
func (s *Service) DeleteProduct(ctx context.Context, actor entity.Actor, productID uint64) error {
	products := s.uow.GetProductRepository(ctx)
	product, err := products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if !actor.CanManage(product.OwnerID) {
		return errs.ErrUnauthorized
	}

	if err := products.Delete(ctx, productID); err != nil {
		return err
	}

	s.discard(ctx, uploads{images: product.ImageURLs, file: product.FileURL})

	s.logger.Info("Product deleted", map[string]any{
		"product_id": productID,
		"deleted_by": actor.UserID,
	})
	return nil
}

func (s *Service) GetProduct(ctx context.Context, productID uint64) (*entity.Product, error) {
	return s.uow.GetProductRepository(ctx).GetByID(ctx, productID)
}

func (s *Service) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	if offset < 0 {
		offset = 0
	}
	return s.uow.GetProductRepository(ctx).List(ctx, pageSize(limit), offset)
}
