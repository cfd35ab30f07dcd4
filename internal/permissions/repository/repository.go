package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const CollectionName = "permissions"

type PermissionRepository interface {
	FindByDescription(ctx context.Context, description string) (*model.Permission, error)
	Create(ctx context.Context, permission *model.Permission) error
}

func NewPermissionRepository(cfg *config.Config) PermissionRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoPermissionRepository(cfg)
	}
	return NewPostgresPermissionRepository(cfg)
}
