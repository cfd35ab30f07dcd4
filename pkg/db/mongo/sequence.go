package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CountersCollection = "counters"

// Sequence hands out monotonically increasing integer ids per collection, so that
// the document store exposes the same numeric identifiers as the relational one.
type Sequence struct {
	counters *mongo.Collection
}

func NewSequence(db *mongo.Database) *Sequence {
	return &Sequence{counters: db.Collection(CountersCollection)}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", name, err)
	}
	return counter.Value, nil
}
