package service

import (
	"context"
	"fmt"
	"net/http"

	"marketplace/internal/deliveries/repository"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

type DeliveryService interface {
	List(ctx context.Context, addressID string, saleID string) ([]*model.Delivery, error)
}

type deliveryService struct {
	repo repository.DeliveryRepository
	log  *logger.Logger
}

func NewDeliveryService(repo repository.DeliveryRepository, log *logger.Logger) DeliveryService {
	return &deliveryService{
		repo: repo,
		log:  log,
	}
}

func (s *deliveryService) List(ctx context.Context, addressID string, saleID string) ([]*model.Delivery, error) {
	var filter repository.Filter

	if addressID != "" {
		id, err := sanitizer.ParseID(addressID)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("The '%s' param must be an integer", "address_id"))
		}
		filter.AddressID = &id
	}
	if saleID != "" {
		id, err := sanitizer.ParseID(saleID)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("The '%s' param must be an integer", "sale_id"))
		}
		filter.SaleID = &id
	}

	deliveries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list deliveries", "address_id", addressID, "sale_id", saleID, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list deliveries", err)
	}

	s.log.Debug("Deliveries listed", "count", len(deliveries))
	return deliveries, nil
}
