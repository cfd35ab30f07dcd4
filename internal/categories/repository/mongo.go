package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	categoryerrors "marketplace/internal/categories/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

type mongoCategoryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequence   *mongodb.Sequence
	txManager  mongodb.TransactionManager
}

func NewMongoCategoryRepository(cfg *config.Config) CategoryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCategoryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sequence:   mongodb.NewSequence(db),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoCategoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

func (r *mongoCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return r.findOne(ctx, bson.M{"name": name}, name)
}

func (r *mongoCategoryRepository) findOne(ctx context.Context, filter bson.M, key any) (*model.Category, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var category model.Category
	if err := r.collection.FindOne(ctx, filter).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %v", categoryerrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (r *mongoCategoryRepository) FindAll(ctx context.Context, term string) ([]*model.Category, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if term != "" {
		filter["name"] = mongodb.ContainsRegex(term)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := make([]*model.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *mongoCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx, CollectionName)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		category.ID = id
		category.CreatedAt = now
		category.UpdatedAt = now
		if _, err := r.collection.InsertOne(sessCtx, category); err != nil {
			category.ID = 0
			if mongodb.IsDuplicateKey(err) {
				return fmt.Errorf("%w: %s", categoryerrors.ErrDuplicate, category.Name)
			}
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
}
