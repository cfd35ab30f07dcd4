package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const CollectionName = "products"

// Filter selects products. Name is already folded and matches as a substring.
type Filter struct {
	Name       string
	CategoryID *int64
}

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filter Filter) ([]*model.Product, error)
}

func NewProductRepository(cfg *config.Config) ProductRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoProductRepository(cfg)
	}
	return NewPostgresProductRepository(cfg)
}
