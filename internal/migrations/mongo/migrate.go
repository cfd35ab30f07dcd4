package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	addressrepo "marketplace/internal/addresses/repository"
	categoryrepo "marketplace/internal/categories/repository"
	deliveryrepo "marketplace/internal/deliveries/repository"
	"marketplace/internal/migrations/mongo/validators"
	permissionrepo "marketplace/internal/permissions/repository"
	productrepo "marketplace/internal/products/repository"
	salerepo "marketplace/internal/productsales/repository"
	staterepo "marketplace/internal/states/repository"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/logger"
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	StatesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "initials", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name_folded", Value: 1}}},
	}

	CitiesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state_id", Value: 1}, {Key: "name_folded", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	AddressesIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "city_id", Value: 1},
				{Key: "street_lower", Value: 1},
				{Key: "number", Value: 1},
				{Key: "cep", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "cep", Value: 1}}},
	}

	CategoriesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	ProductsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "name_folded", Value: 1}}},
	}

	SalesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer_id", Value: 1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
	}

	LineItemsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sales_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	DeliveriesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "address_id", Value: 1}}},
		{Keys: bson.D{{Key: "sale_id", Value: 1}}},
	}

	PermissionsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "description", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
)

// Collections lists every catalog collection with its indexes and schema validator.
func Collections() map[string]CollectionDef {
	return map[string]CollectionDef{
		staterepo.StatesCollection:    {Indexes: StatesIndexes, Validator: validators.StateValidator},
		staterepo.CitiesCollection:    {Indexes: CitiesIndexes, Validator: validators.CityValidator},
		addressrepo.CollectionName:    {Indexes: AddressesIndexes, Validator: validators.AddressValidator},
		categoryrepo.CollectionName:   {Indexes: CategoriesIndexes, Validator: validators.CategoryValidator},
		productrepo.CollectionName:    {Indexes: ProductsIndexes, Validator: validators.ProductValidator},
		salerepo.SalesCollection:      {Indexes: SalesIndexes},
		salerepo.LineItemsCollection:  {Indexes: LineItemsIndexes, Validator: validators.LineItemValidator},
		deliveryrepo.CollectionName:   {Indexes: DeliveriesIndexes},
		permissionrepo.CollectionName: {Indexes: PermissionsIndexes, Validator: validators.PermissionValidator},
		mongodb.CountersCollection:    {},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for name, def := range Collections() {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All Mongo migrations applied", "database", dbName)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	log.Debug("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Debug("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
