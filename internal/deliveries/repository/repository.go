package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const CollectionName = "deliveries"

// Filter fields left nil are not applied.
type Filter struct {
	AddressID *int64
	SaleID    *int64
}

type DeliveryRepository interface {
	FindAll(ctx context.Context, filter Filter) ([]*model.Delivery, error)
	CountByAddress(ctx context.Context, addressID int64) (int64, error)
}

func NewDeliveryRepository(cfg *config.Config) DeliveryRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoDeliveryRepository(cfg)
	}
	return NewPostgresDeliveryRepository(cfg)
}
