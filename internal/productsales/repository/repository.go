package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const (
	SalesCollection     = "sales"
	LineItemsCollection = "products_sales"
)

type ProductSaleRepository interface {
	FindSale(ctx context.Context, id int64) (*model.Sale, error)
	FindLineItem(ctx context.Context, saleID, productID int64) (*model.ProductSale, error)
	UpdatePrice(ctx context.Context, lineItemID int64, price float64) error
	UpdateAmount(ctx context.Context, lineItemID int64, amount int) error
}

func NewProductSaleRepository(cfg *config.Config) ProductSaleRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoProductSaleRepository(cfg)
	}
	return NewPostgresProductSaleRepository(cfg)
}
