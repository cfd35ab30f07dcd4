package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	producterrors "marketplace/internal/products/errors"
	saleerrors "marketplace/internal/productsales/errors"
	"marketplace/internal/productsales/repository"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

const (
	MsgInvalidSaleID       = "The 'sale_id' param must be an integer"
	MsgInvalidProductID    = "The 'product_id' param must be an integer"
	MsgSaleOrProductAbsent = "Sale or product not found"
	MsgProductNotInSale    = "The 'product_id' doesn't match any product registered in the sale"
	MsgInvalidPrice        = "The price must be a number greater than zero"
	MsgInvalidAmount       = "The amount must be an integer greater than zero"
)

type ProductLookup interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}

type ProductSaleService interface {
	UpdatePrice(ctx context.Context, saleID, productID, price string) (*model.ProductSale, error)
	UpdateAmount(ctx context.Context, saleID, productID, amount string) (*model.ProductSale, error)
}

type productSaleService struct {
	repo      repository.ProductSaleRepository
	products  ProductLookup
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewProductSaleService(
	repo repository.ProductSaleRepository,
	products ProductLookup,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) ProductSaleService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &productSaleService{
		repo:      repo,
		products:  products,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

func (s *productSaleService) UpdatePrice(ctx context.Context, saleID, productID, price string) (*model.ProductSale, error) {
	item, err := s.lineItem(ctx, saleID, productID)
	if err != nil {
		return nil, err
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		s.log.Warn("Invalid line item price", "sale_id", item.SaleID, "price", price)
		return nil, apperrors.InvalidInput(MsgInvalidPrice)
	}

	if err := s.repo.UpdatePrice(ctx, item.ID, value); err != nil {
		return nil, s.updateFailed(item, err)
	}

	item.UnitPrice = value
	s.updated(ctx, item, "price")
	return item, nil
}

func (s *productSaleService) UpdateAmount(ctx context.Context, saleID, productID, amount string) (*model.ProductSale, error) {
	item, err := s.lineItem(ctx, saleID, productID)
	if err != nil {
		return nil, err
	}

	value, err := strconv.Atoi(strings.TrimSpace(amount))
	if err != nil || value <= 0 {
		s.log.Warn("Invalid line item amount", "sale_id", item.SaleID, "amount", amount)
		return nil, apperrors.InvalidInput(MsgInvalidAmount)
	}

	if err := s.repo.UpdateAmount(ctx, item.ID, value); err != nil {
		return nil, s.updateFailed(item, err)
	}

	item.Amount = value
	s.updated(ctx, item, "amount")
	return item, nil
}

// lineItem resolves the line item addressed by the path, checking that both the
// sale and the product exist before looking for the pair.
func (s *productSaleService) lineItem(ctx context.Context, saleID, productID string) (*model.ProductSale, error) {
	sid, err := sanitizer.ParseID(saleID)
	if err != nil {
		s.log.Warn("Invalid sale identifier", "sale_id", saleID)
		return nil, apperrors.InvalidInput(MsgInvalidSaleID)
	}
	pid, err := sanitizer.ParseID(productID)
	if err != nil {
		s.log.Warn("Invalid product identifier", "product_id", productID)
		return nil, apperrors.InvalidInput(MsgInvalidProductID)
	}

	if _, err := s.repo.FindSale(ctx, sid); err != nil {
		if errors.Is(err, saleerrors.ErrSaleNotFound) {
			s.log.Warn("Sale not found", "sale_id", sid)
			return nil, apperrors.NotFound(MsgSaleOrProductAbsent)
		}
		s.log.Error("Failed to get sale by ID", "sale_id", sid, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to update line item", err)
	}

	if _, err := s.products.FindByID(ctx, pid); err != nil {
		if errors.Is(err, producterrors.ErrNotFound) {
			s.log.Warn("Product not found", "product_id", pid)
			return nil, apperrors.NotFound(MsgSaleOrProductAbsent)
		}
		s.log.Error("Failed to get product by ID", "product_id", pid, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to update line item", err)
	}

	item, err := s.repo.FindLineItem(ctx, sid, pid)
	if err != nil {
		if errors.Is(err, saleerrors.ErrLineItemNotFound) {
			s.log.Warn("Product not registered in sale", "sale_id", sid, "product_id", pid)
			return nil, apperrors.Mismatch(MsgProductNotInSale)
		}
		s.log.Error("Failed to get line item", "sale_id", sid, "product_id", pid, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to update line item", err)
	}
	return item, nil
}

func (s *productSaleService) updateFailed(item *model.ProductSale, err error) error {
	s.log.Error("Failed to update line item", "id", item.ID, "sale_id", item.SaleID, "error", err)
	s.metrics.RecordOperation("update_product_sale", "error")
	return apperrors.Persistence(http.StatusBadRequest, "Failed to update line item", err)
}

func (s *productSaleService) updated(ctx context.Context, item *model.ProductSale, field string) {
	s.metrics.RecordOperation("update_product_sale", "updated")
	s.publisher.Publish(ctx, events.New(events.ProductSaleUpdated, item.ID, item))
	s.log.Info("Line item updated",
		"id", item.ID,
		"sale_id", item.SaleID,
		"product_id", item.ProductID,
		"field", field,
	)
}
