package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	addresserrors "marketplace/internal/addresses/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
)

const (
	citiesCollection = "cities"
	statesCollection = "states"
)

type addressDocument struct {
	ID          int64     `bson:"_id"`
	Street      string    `bson:"street"`
	StreetLower string    `bson:"street_lower"`
	Number      int       `bson:"number"`
	Complement  string    `bson:"complement"`
	Cep         string    `bson:"cep"`
	CityID      int64     `bson:"city_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newAddressDocument(a *model.Address) addressDocument {
	return addressDocument{
		ID:          a.ID,
		Street:      a.Street,
		StreetLower: strings.ToLower(a.Street),
		Number:      a.Number,
		Complement:  a.Complement,
		Cep:         a.Cep,
		CityID:      a.CityID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (d addressDocument) toModel() *model.Address {
	return &model.Address{
		ID:         d.ID,
		Street:     d.Street,
		Number:     d.Number,
		Complement: d.Complement,
		Cep:        d.Cep,
		CityID:     d.CityID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type mongoAddressRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	cities     *mongo.Collection
	states     *mongo.Collection
	sequence   *mongodb.Sequence
	txManager  mongodb.TransactionManager
}

func NewMongoAddressRepository(cfg *config.Config) AddressRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAddressRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		cities:     db.Collection(citiesCollection),
		states:     db.Collection(statesCollection),
		sequence:   mongodb.NewSequence(db),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoAddressRepository) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"_id": id}, fmt.Errorf("%w: %d", addresserrors.ErrNotFound, id))
}

func (r *mongoAddressRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Address, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CityID != nil {
		query["city_id"] = *filter.CityID
	}
	if filter.Street != "" {
		query["street"] = mongodb.ContainsRegex(filter.Street)
	}
	if filter.Cep != "" {
		query["cep"] = filter.Cep
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []addressDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}

	addresses := make([]*model.Address, 0, len(docs))
	for _, d := range docs {
		addresses = append(addresses, d.toModel())
	}
	if err := r.attachCities(ctx, addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// attachCities resolves city and state of every address with one query per collection.
func (r *mongoAddressRepository) attachCities(ctx context.Context, addresses []*model.Address) error {
	if len(addresses) == 0 {
		return nil
	}

	cityIDs := make([]int64, 0, len(addresses))
	for _, a := range addresses {
		cityIDs = append(cityIDs, a.CityID)
	}

	var cities []struct {
		ID      int64  `bson:"_id"`
		Name    string `bson:"name"`
		StateID int64  `bson:"state_id"`
	}
	cursor, err := r.cities.Find(ctx, bson.M{"_id": bson.M{"$in": cityIDs}})
	if err != nil {
		return fmt.Errorf("failed to resolve cities: %w", err)
	}
	if err := cursor.All(ctx, &cities); err != nil {
		return fmt.Errorf("failed to decode cities: %w", err)
	}

	stateIDs := make([]int64, 0, len(cities))
	for _, c := range cities {
		stateIDs = append(stateIDs, c.StateID)
	}

	var states []*model.State
	cursor, err = r.states.Find(ctx, bson.M{"_id": bson.M{"$in": stateIDs}})
	if err != nil {
		return fmt.Errorf("failed to resolve states: %w", err)
	}
	if err := cursor.All(ctx, &states); err != nil {
		return fmt.Errorf("failed to decode states: %w", err)
	}

	stateByID := make(map[int64]*model.State, len(states))
	for _, s := range states {
		stateByID[s.ID] = s
	}
	cityByID := make(map[int64]*model.City, len(cities))
	for _, c := range cities {
		cityByID[c.ID] = &model.City{ID: c.ID, Name: c.Name, State: stateByID[c.StateID]}
	}
	for _, a := range addresses {
		a.City = cityByID[a.CityID]
	}
	return nil
}

func (r *mongoAddressRepository) FindDuplicate(ctx context.Context, key NaturalKey) (*model.Address, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{
		"city_id":      key.CityID,
		"street_lower": strings.ToLower(key.Street),
		"number":       key.Number,
		"cep":          mongodb.ExactRegex(key.Cep),
	}, addresserrors.ErrNotFound)
}

func (r *mongoAddressRepository) findOne(ctx context.Context, filter bson.M, notFound error) (*model.Address, error) {
	var doc addressDocument
	err := r.collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoAddressRepository) Create(ctx context.Context, address *model.Address) error {
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx, CollectionName)
		if err != nil {
			return err
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		address.ID = id
		address.CreatedAt = now
		address.UpdatedAt = now

		if _, err := r.collection.InsertOne(sessCtx, newAddressDocument(address)); err != nil {
			address.ID = 0
			if mongodb.IsDuplicateKey(err) {
				return fmt.Errorf("%w: %s %d", addresserrors.ErrDuplicate, address.Street, address.Number)
			}
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
}

func (r *mongoAddressRepository) Update(ctx context.Context, address *model.Address) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	address.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": address.ID}, bson.M{"$set": bson.M{
		"street":       address.Street,
		"street_lower": strings.ToLower(address.Street),
		"number":       address.Number,
		"complement":   address.Complement,
		"cep":          address.Cep,
		"updated_at":   address.UpdatedAt,
	}})
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %d", addresserrors.ErrDuplicate, address.ID)
		}
		return fmt.Errorf("failed to update address: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %d", addresserrors.ErrNotFound, address.ID)
	}
	return nil
}

func (r *mongoAddressRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %d", addresserrors.ErrNotFound, id)
	}
	return nil
}
