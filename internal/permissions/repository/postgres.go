package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	permissionerrors "marketplace/internal/permissions/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

type postgresPermissionRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresPermissionRepository(cfg *config.Config) PermissionRepository {
	return &postgresPermissionRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresPermissionRepository) FindByDescription(ctx context.Context, description string) (*model.Permission, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var permission model.Permission
	err := r.db.GetContext(ctx, &permission,
		"SELECT id, description, created_at FROM permissions WHERE description = $1", description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", permissionerrors.ErrNotFound, description)
		}
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	return &permission, nil
}

func (r *postgresPermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	err := r.db.QueryRowxContext(ctx,
		"INSERT INTO permissions (description, created_at, updated_at) VALUES ($1, $2, $2) RETURNING id",
		permission.Description, now,
	).Scan(&permission.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", permissionerrors.ErrDuplicate, permission.Description)
		}
		return fmt.Errorf("failed to create permission: %w", err)
	}

	permission.CreatedAt = now
	return nil
}
