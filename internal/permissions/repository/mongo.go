package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	permissionerrors "marketplace/internal/permissions/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

type mongoPermissionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sequence   *mongodb.Sequence
	txManager  mongodb.TransactionManager
}

func NewMongoPermissionRepository(cfg *config.Config) PermissionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPermissionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sequence:   mongodb.NewSequence(db),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoPermissionRepository) FindByDescription(ctx context.Context, description string) (*model.Permission, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var permission model.Permission
	if err := r.collection.FindOne(ctx, bson.M{"description": description}).Decode(&permission); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", permissionerrors.ErrNotFound, description)
		}
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	return &permission, nil
}

func (r *mongoPermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx, CollectionName)
		if err != nil {
			return err
		}

		permission.ID = id
		permission.CreatedAt = time.Now().UTC()
		if _, err := r.collection.InsertOne(sessCtx, permission); err != nil {
			permission.ID = 0
			if mongodb.IsDuplicateKey(err) {
				return fmt.Errorf("%w: %s", permissionerrors.ErrDuplicate, permission.Description)
			}
			return fmt.Errorf("failed to create permission: %w", err)
		}
		return nil
	})
}
