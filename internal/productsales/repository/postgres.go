package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	saleerrors "marketplace/internal/productsales/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

type postgresProductSaleRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresProductSaleRepository(cfg *config.Config) ProductSaleRepository {
	return &postgresProductSaleRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresProductSaleRepository) FindSale(ctx context.Context, id int64) (*model.Sale, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sale model.Sale
	err := r.db.GetContext(ctx, &sale,
		"SELECT id, buyer_id, seller_id, dt_sale, created_at FROM sales WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", saleerrors.ErrSaleNotFound, id)
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &sale, nil
}

func (r *postgresProductSaleRepository) FindLineItem(ctx context.Context, saleID, productID int64) (*model.ProductSale, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.ProductSale
	err := r.db.GetContext(ctx, &item,
		`SELECT id, sales_id, product_id, unit_price, amount FROM products_sales
WHERE sales_id = $1 AND product_id = $2 ORDER BY id LIMIT 1`,
		saleID, productID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: sale %d product %d", saleerrors.ErrLineItemNotFound, saleID, productID)
		}
		return nil, fmt.Errorf("failed to find line item: %w", err)
	}
	return &item, nil
}

func (r *postgresProductSaleRepository) UpdatePrice(ctx context.Context, lineItemID int64, price float64) error {
	return r.exec(ctx, lineItemID, "UPDATE products_sales SET unit_price = $1, updated_at = now() WHERE id = $2", price)
}

func (r *postgresProductSaleRepository) UpdateAmount(ctx context.Context, lineItemID int64, amount int) error {
	return r.exec(ctx, lineItemID, "UPDATE products_sales SET amount = $1, updated_at = now() WHERE id = $2", amount)
}

func (r *postgresProductSaleRepository) exec(ctx context.Context, lineItemID int64, query string, value any) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, query, value, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to update line item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update line item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", saleerrors.ErrLineItemNotFound, lineItemID)
	}
	return nil
}
