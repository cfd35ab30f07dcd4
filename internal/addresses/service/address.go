package service

import (
	"context"
	"errors"
	"net/http"

	addresserrors "marketplace/internal/addresses/errors"
	"marketplace/internal/addresses/repository"
	"marketplace/internal/addresses/validator"
	stateerrors "marketplace/internal/states/errors"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

const (
	MsgInvalidIDs        = "The 'state_id' and 'city_id' params must be integers"
	MsgInvalidStateID    = "The 'state_id' param must be an integer"
	MsgInvalidCityID     = "The 'city_id' param must be an integer"
	MsgInvalidAddressID  = "The 'address_id' param must be an integer"
	MsgStateNotFound     = "Couldn't find any state with the given 'state_id'"
	MsgCityNotFound      = "Couldn't find any city with the given 'city_id'"
	MsgCityStateMismatch = "The 'city_id' returned a city that doesn't match with the given 'state_id'"
	MsgAddressNotFound   = "Address not found"
	MsgNothingToUpdate   = "You have to fill in at least one field for the update"
	MsgAddressInUse      = "This address is being used, therefore cannot be deleted."
)

// StateLookup and CityLookup are the parts of the states repositories an address needs.
type StateLookup interface {
	FindByID(ctx context.Context, id int64) (*model.State, error)
}

type CityLookup interface {
	FindByID(ctx context.Context, id int64) (*model.City, error)
}

// DeliveryCounter reports how many deliveries point at an address.
type DeliveryCounter interface {
	CountByAddress(ctx context.Context, addressID int64) (int64, error)
}

type AddressService interface {
	// Create returns existed=true with the stored row when an equivalent address is already present.
	Create(ctx context.Context, stateID, cityID string, in *model.AddressInput) (address *model.Address, existed bool, err error)
	Update(ctx context.Context, addressID string, in *model.AddressInput) (*model.Address, error)
	Delete(ctx context.Context, addressID string) error
	List(ctx context.Context, cityID, street, cep string) ([]*model.Address, error)
}

type addressService struct {
	addresses  repository.AddressRepository
	states     StateLookup
	cities     CityLookup
	deliveries DeliveryCounter
	validator  *validator.AddressValidator
	publisher  events.Publisher
	metrics    *metrics.Metrics
	log        *logger.Logger
}

func NewAddressService(
	addresses repository.AddressRepository,
	states StateLookup,
	cities CityLookup,
	deliveries DeliveryCounter,
	validator *validator.AddressValidator,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) AddressService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &addressService{
		addresses:  addresses,
		states:     states,
		cities:     cities,
		deliveries: deliveries,
		validator:  validator,
		publisher:  publisher,
		metrics:    m,
		log:        log,
	}
}

func (s *addressService) Create(ctx context.Context, stateID, cityID string, in *model.AddressInput) (*model.Address, bool, error) {
	sid, stateErr := sanitizer.ParseID(stateID)
	cid, cityErr := sanitizer.ParseID(cityID)
	switch {
	case stateErr != nil && cityErr != nil:
		s.log.Warn("Invalid address parents", "state_id", stateID, "city_id", cityID)
		return nil, false, apperrors.InvalidInput(MsgInvalidIDs)
	case stateErr != nil:
		s.log.Warn("Invalid state identifier", "state_id", stateID)
		return nil, false, apperrors.InvalidInput(MsgInvalidStateID)
	case cityErr != nil:
		s.log.Warn("Invalid city identifier", "city_id", cityID)
		return nil, false, apperrors.InvalidInput(MsgInvalidCityID)
	}

	city, err := s.resolveCity(ctx, sid, cid)
	if err != nil {
		return nil, false, err
	}

	address, err := s.validator.ParseCreate(in)
	if err != nil {
		s.log.Warn("Address validation failed", "city_id", cid, "error", err)
		return nil, false, apperrors.InvalidInput(validator.Message(err))
	}
	address.CityID = city.ID

	existing, err := s.addresses.FindDuplicate(ctx, repository.KeyOf(address))
	switch {
	case err == nil:
		s.log.Info("Address already exists", "id", existing.ID, "city_id", city.ID)
		s.metrics.RecordOperation("create_address", "existing")
		return existing, true, nil
	case !errors.Is(err, addresserrors.ErrNotFound):
		s.log.Error("Failed to check duplicate address", "city_id", city.ID, "error", err)
		s.metrics.RecordOperation("create_address", "error")
		return nil, false, apperrors.Persistence(http.StatusBadRequest, "Failed to create address", err)
	}

	if err := s.addresses.Create(ctx, address); err != nil {
		if errors.Is(err, addresserrors.ErrDuplicate) {
			// Lost the race against a concurrent insert of the same address.
			if existing, findErr := s.addresses.FindDuplicate(ctx, repository.KeyOf(address)); findErr == nil {
				s.metrics.RecordOperation("create_address", "existing")
				return existing, true, nil
			}
		}
		s.log.Error("Failed to create address", "city_id", city.ID, "error", err)
		s.metrics.RecordOperation("create_address", "error")
		return nil, false, apperrors.Persistence(http.StatusBadRequest, "Failed to create address", err)
	}

	address.City = city
	s.metrics.RecordOperation("create_address", "created")
	s.publisher.Publish(ctx, events.New(events.AddressCreated, address.ID, address))
	s.log.Info("Address created successfully", "id", address.ID, "city_id", city.ID)
	return address, false, nil
}

// resolveCity checks that both parents exist and that the city belongs to the state.
func (s *addressService) resolveCity(ctx context.Context, stateID, cityID int64) (*model.City, error) {
	state, err := s.states.FindByID(ctx, stateID)
	if err != nil {
		if errors.Is(err, stateerrors.ErrStateNotFound) {
			s.log.Warn("State not found", "state_id", stateID)
			return nil, apperrors.NotFound(MsgStateNotFound)
		}
		s.log.Error("Failed to get state by ID", "state_id", stateID, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create address", err)
	}

	city, err := s.cities.FindByID(ctx, cityID)
	if err != nil {
		if errors.Is(err, stateerrors.ErrCityNotFound) {
			s.log.Warn("City not found", "city_id", cityID)
			return nil, apperrors.NotFound(MsgCityNotFound)
		}
		s.log.Error("Failed to get city by ID", "city_id", cityID, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create address", err)
	}

	if city.StateID != state.ID {
		s.log.Warn("City does not belong to state",
			"state_id", state.ID,
			"city_id", city.ID,
			"city_state_id", city.StateID,
		)
		return nil, apperrors.Mismatch(MsgCityStateMismatch)
	}

	if city.State == nil {
		city.State = state
	}
	return city, nil
}

// Update merges the supplied fields into the stored address. Uniqueness is not re-checked.
func (s *addressService) Update(ctx context.Context, addressID string, in *model.AddressInput) (*model.Address, error) {
	id, err := sanitizer.ParseID(addressID)
	if err != nil {
		s.log.Warn("Invalid address identifier", "address_id", addressID)
		return nil, apperrors.InvalidInput(MsgInvalidAddressID)
	}

	current, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, addresserrors.ErrNotFound) {
			s.log.Warn("Address not found", "address_id", id)
			return nil, apperrors.NotFound(MsgAddressNotFound)
		}
		s.log.Error("Failed to get address by ID", "address_id", id, "error", err)
		return nil, apperrors.Persistence(http.StatusForbidden, "Failed to update address", err)
	}

	update, err := s.validator.ParseUpdate(in)
	if err != nil {
		s.log.Warn("Address update validation failed", "address_id", id, "error", err)
		return nil, apperrors.InvalidInput(validator.Message(err))
	}
	if update.IsEmpty() {
		return nil, apperrors.InvalidInput(MsgNothingToUpdate)
	}

	merged := update.Apply(current)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.InvalidInput(validator.Message(err))
	}

	if err := s.addresses.Update(ctx, merged); err != nil {
		if errors.Is(err, addresserrors.ErrNotFound) {
			return nil, apperrors.NotFound(MsgAddressNotFound)
		}
		s.log.Error("Failed to update address", "address_id", id, "error", err)
		s.metrics.RecordOperation("update_address", "error")
		return nil, apperrors.Persistence(http.StatusForbidden, "Failed to update address", err)
	}

	s.metrics.RecordOperation("update_address", "updated")
	s.publisher.Publish(ctx, events.New(events.AddressUpdated, merged.ID, merged))
	s.log.Info("Address updated successfully", "id", merged.ID)
	return merged, nil
}

// Delete refuses to remove an address that deliveries or the store still reference.
func (s *addressService) Delete(ctx context.Context, addressID string) error {
	id, err := sanitizer.ParseID(addressID)
	if err != nil {
		s.log.Warn("Invalid address identifier", "address_id", addressID)
		return apperrors.InvalidInput(MsgInvalidAddressID)
	}

	if _, err := s.addresses.FindByID(ctx, id); err != nil {
		if errors.Is(err, addresserrors.ErrNotFound) {
			s.log.Warn("Address not found", "address_id", id)
			return apperrors.NotFound(MsgAddressNotFound + ".")
		}
		s.log.Error("Failed to get address by ID", "address_id", id, "error", err)
		return apperrors.Persistence(http.StatusBadRequest, "Failed to delete address", err)
	}

	count, err := s.deliveries.CountByAddress(ctx, id)
	if err != nil {
		s.log.Error("Failed to count deliveries", "address_id", id, "error", err)
		return apperrors.Persistence(http.StatusBadRequest, "Failed to delete address", err)
	}
	if count > 0 {
		s.log.Warn("Address in use", "address_id", id, "deliveries", count)
		return apperrors.InvalidInput(MsgAddressInUse)
	}

	if err := s.addresses.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, addresserrors.ErrInUse):
			s.log.Warn("Address in use", "address_id", id)
			return apperrors.InvalidInput(MsgAddressInUse)
		case errors.Is(err, addresserrors.ErrNotFound):
			return apperrors.NotFound(MsgAddressNotFound + ".")
		}
		s.log.Error("Failed to delete address", "address_id", id, "error", err)
		s.metrics.RecordOperation("delete_address", "error")
		return apperrors.Persistence(http.StatusBadRequest, "Failed to delete address", err)
	}

	s.metrics.RecordOperation("delete_address", "deleted")
	s.publisher.Publish(ctx, events.New(events.AddressDeleted, id, map[string]int64{"id": id}))
	s.log.Info("Address deleted successfully", "id", id)
	return nil
}

func (s *addressService) List(ctx context.Context, cityID, street, cep string) ([]*model.Address, error) {
	filter := repository.Filter{
		Street: sanitizer.TrimAndNormalize(street),
	}

	if cityID = sanitizer.TrimAndNormalize(cityID); cityID != "" {
		id, err := sanitizer.ParseID(cityID)
		if err != nil {
			s.log.Warn("Invalid city identifier", "city_id", cityID)
			return nil, apperrors.InvalidInput(MsgInvalidCityID)
		}
		filter.CityID = &id
	}

	if cep = sanitizer.TrimAndNormalize(cep); cep != "" {
		if normalized, err := sanitizer.NormalizePostalCode(cep); err == nil {
			cep = normalized
		}
		filter.Cep = cep
	}

	addresses, err := s.addresses.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list addresses", "error", err)
		return nil, apperrors.Persistence(http.StatusForbidden, "Failed to list addresses", err)
	}

	s.log.Debug("Addresses listed", "count", len(addresses))
	return addresses, nil
}
