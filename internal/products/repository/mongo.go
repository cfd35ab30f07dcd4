package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	producterrors "marketplace/internal/products/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

type productDocument struct {
	ID             int64   `bson:"_id"`
	Name           string  `bson:"name"`
	NameFolded     string  `bson:"name_folded"`
	SuggestedPrice float64 `bson:"suggested_price"`
	CategoryID     int64   `bson:"category_id"`
}

func (d productDocument) toModel() *model.Product {
	return &model.Product{
		ID:             d.ID,
		Name:           d.Name,
		SuggestedPrice: d.SuggestedPrice,
		CategoryID:     d.CategoryID,
	}
}

type mongoProductRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProductRepository(cfg *config.Config) ProductRepository {
	return &mongoProductRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(CollectionName),
	}
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc productDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", producterrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Product, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Name != "" {
		query["name_folded"] = mongodb.ContainsRegex(filter.Name)
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*model.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, nil
}
