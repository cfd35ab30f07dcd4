package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	stateerrors "marketplace/internal/states/errors"
	"marketplace/pkg/config"
	mongodb "marketplace/pkg/db/mongo"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

// Documents carry a folded copy of the name, so contains-matches ignore accents
// the same way the relational store's translate() expression does.
type stateDocument struct {
	ID         int64  `bson:"_id"`
	Name       string `bson:"name"`
	Initials   string `bson:"initials"`
	NameFolded string `bson:"name_folded"`
}

func (d stateDocument) toModel() *model.State {
	return &model.State{ID: d.ID, Name: d.Name, Initials: d.Initials}
}

type cityDocument struct {
	ID         int64  `bson:"_id"`
	Name       string `bson:"name"`
	NameFolded string `bson:"name_folded"`
	StateID    int64  `bson:"state_id"`
}

type mongoStateRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStateRepository(cfg *config.Config) StateRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStateRepository{
		cfg:        cfg,
		collection: db.Collection(StatesCollection),
	}
}

func (r *mongoStateRepository) FindByID(ctx context.Context, id int64) (*model.State, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", stateerrors.ErrStateNotFound, id)
		}
		return nil, fmt.Errorf("failed to find state: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoStateRepository) FindAll(ctx context.Context) ([]*model.State, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoStateRepository) FindByInitials(ctx context.Context, term string) ([]*model.State, error) {
	return r.find(ctx, bson.M{"initials": mongodb.ContainsRegex(term)})
}

func (r *mongoStateRepository) FindByName(ctx context.Context, term string) ([]*model.State, error) {
	return r.find(ctx, bson.M{"name_folded": mongodb.ContainsRegex(term)})
}

func (r *mongoStateRepository) find(ctx context.Context, filter bson.M) ([]*model.State, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []stateDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode states: %w", err)
	}

	states := make([]*model.State, 0, len(docs))
	for _, d := range docs {
		states = append(states, d.toModel())
	}
	return states, nil
}

type mongoCityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	states     *mongo.Collection
	sequence   *mongodb.Sequence
	txManager  mongodb.TransactionManager
}

func NewMongoCityRepository(cfg *config.Config) CityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCityRepository{
		cfg:        cfg,
		collection: db.Collection(CitiesCollection),
		states:     db.Collection(StatesCollection),
		sequence:   mongodb.NewSequence(db),
		txManager:  mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoCityRepository) FindByID(ctx context.Context, id int64) (*model.City, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc cityDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", stateerrors.ErrCityNotFound, id)
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}

	state, err := r.state(ctx, doc.StateID)
	if err != nil {
		return nil, err
	}
	return toCity(doc, state), nil
}

func (r *mongoCityRepository) FindByState(ctx context.Context, stateID int64, name string) ([]*model.City, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"state_id": stateID}
	if name != "" {
		filter["name_folded"] = mongodb.ContainsRegex(name)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []cityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cities: %w", err)
	}
	if len(docs) == 0 {
		return []*model.City{}, nil
	}

	state, err := r.state(ctx, stateID)
	if err != nil {
		return nil, err
	}

	cities := make([]*model.City, 0, len(docs))
	for _, d := range docs {
		cities = append(cities, toCity(d, state))
	}
	return cities, nil
}

func (r *mongoCityRepository) FindDuplicate(ctx context.Context, stateID int64, foldedName string) (*model.City, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc cityDocument
	err := r.collection.FindOne(ctx, bson.M{
		"state_id":    stateID,
		"name_folded": mongodb.ContainsRegex(foldedName),
	}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, stateerrors.ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to check duplicate city: %w", err)
	}
	return toCity(doc, nil), nil
}

func (r *mongoCityRepository) Create(ctx context.Context, city *model.City) error {
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		id, err := r.sequence.Next(sessCtx, CitiesCollection)
		if err != nil {
			return err
		}

		doc := cityDocument{
			ID:         id,
			Name:       city.Name,
			NameFolded: sanitizer.Fold(city.Name),
			StateID:    city.StateID,
		}
		if _, err := r.collection.InsertOne(sessCtx, doc); err != nil {
			if mongodb.IsDuplicateKey(err) {
				return fmt.Errorf("%w: %s", stateerrors.ErrDuplicateCity, city.Name)
			}
			return fmt.Errorf("failed to create city: %w", err)
		}

		city.ID = id
		return nil
	})
}

func (r *mongoCityRepository) state(ctx context.Context, id int64) (*model.State, error) {
	var doc stateDocument
	if err := r.states.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", stateerrors.ErrStateNotFound, id)
		}
		return nil, fmt.Errorf("failed to find state: %w", err)
	}
	return doc.toModel(), nil
}

func toCity(doc cityDocument, state *model.State) *model.City {
	return &model.City{
		ID:      doc.ID,
		Name:    doc.Name,
		StateID: doc.StateID,
		State:   state,
	}
}
