package repository

import (
	"context"

	"marketplace/pkg/config"
	"marketplace/pkg/model"
)

const CollectionName = "addresses"

// Filter selects addresses for listing. Street is a case-insensitive contains match,
// the other fields are exact. Zero values are not applied.
type Filter struct {
	CityID *int64
	Street string
	Cep    string
}

// NaturalKey identifies an address within its city. Street and Cep compare
// case-insensitively.
type NaturalKey struct {
	CityID int64
	Street string
	Number int
	Cep    string
}

type AddressRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Address, error)
	// FindAll returns the matching addresses with their city and state attached.
	FindAll(ctx context.Context, filter Filter) ([]*model.Address, error)
	FindDuplicate(ctx context.Context, key NaturalKey) (*model.Address, error)
	Create(ctx context.Context, address *model.Address) error
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, id int64) error
}

func NewAddressRepository(cfg *config.Config) AddressRepository {
	if cfg.StoreDriver == config.StoreDriverMongo {
		return NewMongoAddressRepository(cfg)
	}
	return NewPostgresAddressRepository(cfg)
}

func KeyOf(a *model.Address) NaturalKey {
	return NaturalKey{
		CityID: a.CityID,
		Street: a.Street,
		Number: a.Number,
		Cep:    a.Cep,
	}
}
