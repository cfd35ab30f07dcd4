package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

type postgresDeliveryRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresDeliveryRepository(cfg *config.Config) DeliveryRepository {
	return &postgresDeliveryRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresDeliveryRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Delivery, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var conditions []string
	var args []any
	if filter.AddressID != nil {
		args = append(args, *filter.AddressID)
		conditions = append(conditions, fmt.Sprintf("address_id = $%d", len(args)))
	}
	if filter.SaleID != nil {
		args = append(args, *filter.SaleID)
		conditions = append(conditions, fmt.Sprintf("sale_id = $%d", len(args)))
	}

	query := "SELECT id, address_id, sale_id, delivery_forecast FROM deliveries"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	var deliveries []*model.Delivery
	if err := r.db.SelectContext(ctx, &deliveries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return deliveries, nil
}

func (r *postgresDeliveryRepository) CountByAddress(ctx context.Context, addressID int64) (int64, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM deliveries WHERE address_id = $1", addressID); err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count, nil
}
