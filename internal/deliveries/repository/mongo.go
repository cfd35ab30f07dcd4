package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

type mongoDeliveryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDeliveryRepository(cfg *config.Config) DeliveryRepository {
	return &mongoDeliveryRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (r *mongoDeliveryRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Delivery, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AddressID != nil {
		query["address_id"] = *filter.AddressID
	}
	if filter.SaleID != nil {
		query["sale_id"] = *filter.SaleID
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer cursor.Close(ctx)

	var deliveries []*model.Delivery
	if err := cursor.All(ctx, &deliveries); err != nil {
		return nil, fmt.Errorf("failed to decode deliveries: %w", err)
	}
	return deliveries, nil
}

func (r *mongoDeliveryRepository) CountByAddress(ctx context.Context, addressID int64) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"address_id": addressID})
	if err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count, nil
}
