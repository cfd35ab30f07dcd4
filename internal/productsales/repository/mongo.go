package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	saleerrors "marketplace/internal/productsales/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

type mongoProductSaleRepository struct {
	cfg       *config.Config
	sales     *mongo.Collection
	lineItems *mongo.Collection
}

func NewMongoProductSaleRepository(cfg *config.Config) ProductSaleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProductSaleRepository{
		cfg:       cfg,
		sales:     db.Collection(SalesCollection),
		lineItems: db.Collection(LineItemsCollection),
	}
}

func (r *mongoProductSaleRepository) FindSale(ctx context.Context, id int64) (*model.Sale, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sale model.Sale
	if err := r.sales.FindOne(ctx, bson.M{"_id": id}).Decode(&sale); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", saleerrors.ErrSaleNotFound, id)
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &sale, nil
}

func (r *mongoProductSaleRepository) FindLineItem(ctx context.Context, saleID, productID int64) (*model.ProductSale, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var item model.ProductSale
	err := r.lineItems.FindOne(ctx,
		bson.M{"sales_id": saleID, "product_id": productID},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: sale %d product %d", saleerrors.ErrLineItemNotFound, saleID, productID)
		}
		return nil, fmt.Errorf("failed to find line item: %w", err)
	}
	return &item, nil
}

func (r *mongoProductSaleRepository) UpdatePrice(ctx context.Context, lineItemID int64, price float64) error {
	return r.set(ctx, lineItemID, bson.M{"unit_price": price})
}

func (r *mongoProductSaleRepository) UpdateAmount(ctx context.Context, lineItemID int64, amount int) error {
	return r.set(ctx, lineItemID, bson.M{"amount": amount})
}

func (r *mongoProductSaleRepository) set(ctx context.Context, lineItemID int64, fields bson.M) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	fields["updated_at"] = time.Now().UTC()
	result, err := r.lineItems.UpdateOne(ctx, bson.M{"_id": lineItemID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update line item: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", saleerrors.ErrLineItemNotFound, lineItemID)
	}
	return nil
}
