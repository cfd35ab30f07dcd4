package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const (
	StatesCollection = "states"
	CitiesCollection = "cities"
)

type StateRepository interface {
	FindByID(ctx context.Context, id int64) (*model.State, error)
	FindAll(ctx context.Context) ([]*model.State, error)
	// FindByInitials is a case-insensitive contains match on initials.
	FindByInitials(ctx context.Context, term string) ([]*model.State, error)
	// FindByName is a contains match against the folded name; term must already be folded.
	FindByName(ctx context.Context, term string) ([]*model.State, error)
}

type CityRepository interface {
	FindByID(ctx context.Context, id int64) (*model.City, error)
	// FindByState lists the cities of a state with their state attached. An empty
	// name lists every city; otherwise name is a folded contains match.
	FindByState(ctx context.Context, stateID int64, name string) ([]*model.City, error)
	// FindDuplicate returns the first city of the state whose folded name contains
	// foldedName, or ErrCityNotFound.
	FindDuplicate(ctx context.Context, stateID int64, foldedName string) (*model.City, error)
	Create(ctx context.Context, city *model.City) error
}

// NewStateRepository picks the implementation matching cfg.StoreDriver.
func NewStateRepository(cfg *config.Config) StateRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoStateRepository(cfg)
	}
	return NewPostgresStateRepository(cfg)
}

func NewCityRepository(cfg *config.Config) CityRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoCityRepository(cfg)
	}
	return NewPostgresCityRepository(cfg)
}
