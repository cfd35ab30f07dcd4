package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const CollectionName = "categories"

type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	// FindByName matches the stored name exactly, case included.
	FindByName(ctx context.Context, name string) (*model.Category, error)
	// FindAll returns categories whose name contains term, ignoring case. An empty term matches all.
	FindAll(ctx context.Context, term string) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
}

func NewCategoryRepository(cfg *config.Config) CategoryRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoCategoryRepository(cfg)
	}
	return NewPostgresCategoryRepository(cfg)
}
