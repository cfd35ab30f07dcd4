package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	producterrors "marketplace/internal/products/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

const productColumns = "id, name, suggested_price, category_id"

var foldedProductName = postgres.FoldedColumn("name")

type postgresProductRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresProductRepository(cfg *config.Config) ProductRepository {
	return &postgresProductRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var product model.Product
	err := r.db.GetContext(ctx, &product, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", producterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *postgresProductRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Product, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var conditions []string
	var args []any
	if filter.Name != "" {
		args = append(args, postgres.ContainsPattern(filter.Name))
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", foldedProductName, len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	products := make([]*model.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
