package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	categoryrepo "marketplace/internal/categories/repository"
	"marketplace/internal/migrations/seed"
	permissionrepo "marketplace/internal/permissions/repository"
	productrepo "marketplace/internal/products/repository"
	staterepo "marketplace/internal/states/repository"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/logger"
	"marketplace/pkg/sanitizer"
)

// Seed loads the reference data into empty collections. A collection that
// already holds documents is skipped, and the id counters are raised to cover
// the seeded ids.
func Seed(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)

	states := make([]any, 0, len(seed.States))
	stateIDs := make(map[string]int64, len(seed.States))
	for i, s := range seed.States {
		id := int64(i + 1)
		stateIDs[s.Initials] = id
		states = append(states, bson.M{
			"_id":         id,
			"name":        s.Name,
			"initials":    s.Initials,
			"name_folded": sanitizer.Fold(s.Name),
		})
	}

	cities := make([]any, 0, len(seed.Cities))
	for i, c := range seed.Cities {
		cities = append(cities, bson.M{
			"_id":         int64(i + 1),
			"name":        c.Name,
			"name_folded": sanitizer.Fold(c.Name),
			"state_id":    stateIDs[c.StateInitials],
		})
	}

	categories := make([]any, 0, len(seed.Categories))
	categoryIDs := make(map[string]int64, len(seed.Categories))
	for i, name := range seed.Categories {
		id := int64(i + 1)
		categoryIDs[name] = id
		categories = append(categories, bson.M{"_id": id, "name": name})
	}

	products := make([]any, 0, len(seed.Products))
	for i, p := range seed.Products {
		products = append(products, bson.M{
			"_id":             int64(i + 1),
			"name":            p.Name,
			"name_folded":     sanitizer.Fold(p.Name),
			"suggested_price": p.SuggestedPrice,
			"category_id":     categoryIDs[p.Category],
		})
	}

	permissions := make([]any, 0, len(seed.Permissions))
	for i, description := range seed.Permissions {
		permissions = append(permissions, bson.M{"_id": int64(i + 1), "description": description})
	}

	batches := []struct {
		collection string
		docs       []any
	}{
		{staterepo.StatesCollection, states},
		{staterepo.CitiesCollection, cities},
		{categoryrepo.CollectionName, categories},
		{productrepo.CollectionName, products},
		{permissionrepo.CollectionName, permissions},
	}

	for _, b := range batches {
		inserted, err := seedCollection(ctx, db, b.collection, b.docs)
		if err != nil {
			return err
		}
		if !inserted {
			log.Debug("Collection already seeded", "collection", b.collection)
			continue
		}
		log.Info("Seeded collection", "collection", b.collection, "documents", len(b.docs))
	}

	return nil
}

func seedCollection(ctx context.Context, db *mongo.Database, name string, docs []any) (bool, error) {
	coll := db.Collection(name)
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", name, err)
	}
	if count > 0 {
		return false, nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return false, fmt.Errorf("failed to seed %s: %w", name, err)
	}
	if err := raiseCounter(ctx, db, name, int64(len(docs))); err != nil {
		return false, err
	}
	return true, nil
}

func raiseCounter(ctx context.Context, db *mongo.Database, name string, value int64) error {
	_, err := db.Collection(mongodb.CountersCollection).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": value}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to raise counter for %s: %w", name, err)
	}
	return nil
}
