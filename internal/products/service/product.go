package service

import (
	"context"
	"errors"
	"net/http"

	producterrors "marketplace/internal/products/errors"
	"marketplace/internal/products/repository"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

const (
	MsgInvalidProductID  = "The 'product_id' param must be an integer"
	MsgInvalidCategoryID = "The 'category_id' param must be an integer"
	MsgProductNotFound   = "Product not found"
)

type ProductService interface {
	List(ctx context.Context, name, categoryID string) ([]*model.Product, error)
	GetByID(ctx context.Context, productID string) (*model.Product, error)
}

type productService struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

func NewProductService(repo repository.ProductRepository, log *logger.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log,
	}
}

func (s *productService) List(ctx context.Context, name, categoryID string) ([]*model.Product, error) {
	filter := repository.Filter{
		Name: sanitizer.Fold(sanitizer.TrimAndNormalize(name)),
	}
	if categoryID != "" {
		id, err := sanitizer.ParseID(categoryID)
		if err != nil {
			s.log.Warn("Invalid category identifier", "category_id", categoryID)
			return nil, apperrors.InvalidInput(MsgInvalidCategoryID)
		}
		filter.CategoryID = &id
	}

	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list products", "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list products", err)
	}

	s.log.Debug("Products listed", "name", filter.Name, "count", len(products))
	return products, nil
}

func (s *productService) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	id, err := sanitizer.ParseID(productID)
	if err != nil {
		s.log.Warn("Invalid product identifier", "product_id", productID)
		return nil, apperrors.InvalidInput(MsgInvalidProductID)
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, producterrors.ErrNotFound) {
			return nil, apperrors.NotFound(MsgProductNotFound)
		}
		s.log.Error("Failed to get product by ID", "product_id", id, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to retrieve product", err)
	}
	return product, nil
}
