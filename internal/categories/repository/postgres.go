package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	categoryerrors "marketplace/internal/categories/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

const categoryColumns = "id, name, created_at, updated_at"

type postgresCategoryRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresCategoryRepository(cfg *config.Config) CategoryRepository {
	return &postgresCategoryRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresCategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.get(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
}

func (r *postgresCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.get(ctx, "SELECT "+categoryColumns+" FROM categories WHERE name = $1", name)
}

func (r *postgresCategoryRepository) get(ctx context.Context, query string, arg any) (*model.Category, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var category model.Category
	if err := r.db.GetContext(ctx, &category, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %v", categoryerrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *postgresCategoryRepository) FindAll(ctx context.Context, term string) ([]*model.Category, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := "SELECT " + categoryColumns + " FROM categories"
	var args []any
	if term != "" {
		query += " WHERE name ILIKE $1"
		args = append(args, postgres.ContainsPattern(term))
	}
	query += " ORDER BY id"

	categories := make([]*model.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *postgresCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	err := r.db.QueryRowxContext(ctx,
		"INSERT INTO categories (name, created_at, updated_at) VALUES ($1, $2, $2) RETURNING id",
		category.Name, now,
	).Scan(&category.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", categoryerrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	category.CreatedAt = now
	category.UpdatedAt = now
	return nil
}
