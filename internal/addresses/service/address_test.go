package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	addresserrors "marketplace/internal/addresses/errors"
	"marketplace/internal/addresses/repository"
	"marketplace/internal/addresses/validator"
	stateerrors "marketplace/internal/states/errors"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAddressRepository struct {
	findByIDFunc      func(ctx context.Context, id int64) (*model.Address, error)
	findAllFunc       func(ctx context.Context, filter repository.Filter) ([]*model.Address, error)
	findDuplicateFunc func(ctx context.Context, key repository.NaturalKey) (*model.Address, error)
	createFunc        func(ctx context.Context, address *model.Address) error
	updateFunc        func(ctx context.Context, address *model.Address) error
	deleteFunc        func(ctx context.Context, id int64) error
}

func (m *mockAddressRepository) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("%w: %d", addresserrors.ErrNotFound, id)
}

func (m *mockAddressRepository) FindAll(ctx context.Context, filter repository.Filter) ([]*model.Address, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, filter)
	}
	return []*model.Address{}, nil
}

func (m *mockAddressRepository) FindDuplicate(ctx context.Context, key repository.NaturalKey) (*model.Address, error) {
	if m.findDuplicateFunc != nil {
		return m.findDuplicateFunc(ctx, key)
	}
	return nil, addresserrors.ErrNotFound
}

func (m *mockAddressRepository) Create(ctx context.Context, address *model.Address) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, address)
	}
	address.ID = 500
	return nil
}

func (m *mockAddressRepository) Update(ctx context.Context, address *model.Address) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, address)
	}
	return nil
}

func (m *mockAddressRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type stubStates map[int64]*model.State

func (s stubStates) FindByID(_ context.Context, id int64) (*model.State, error) {
	if st, ok := s[id]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("%w: %d", stateerrors.ErrStateNotFound, id)
}

type stubCities map[int64]*model.City

func (s stubCities) FindByID(_ context.Context, id int64) (*model.City, error) {
	if c, ok := s[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %d", stateerrors.ErrCityNotFound, id)
}

type stubDeliveries struct {
	count int64
	err   error
}

func (s stubDeliveries) CountByAddress(context.Context, int64) (int64, error) {
	return s.count, s.err
}

var (
	santaCatarina = &model.State{ID: 24, Name: "Santa Catarina", Initials: "SC"}
	saoPaulo      = &model.State{ID: 25, Name: "São Paulo", Initials: "SP"}
	joinville     = &model.City{ID: 5, Name: "Joinville", StateID: 24}
)

func newTestService(repo *mockAddressRepository, deliveries DeliveryCounter, pub events.Publisher) AddressService {
	log := logger.NewNop()
	return NewAddressService(
		repo,
		stubStates{24: santaCatarina, 25: saoPaulo},
		stubCities{5: joinville},
		deliveries,
		validator.NewAddressValidator(log),
		pub,
		nil,
		log,
	)
}

func requireAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	assert.Equal(t, status, appErr.StatusCode())
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func validInput() *model.AddressInput {
	return &model.AddressInput{
		Street: "Rua XV de Novembro",
		Number: json.Number("100"),
		Cep:    "89201-100",
	}
}

func TestCreate_InvalidIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		stateID string
		cityID  string
		wantMsg string
	}{
		{name: "state only", stateID: "abc", cityID: "5", wantMsg: MsgInvalidStateID},
		{name: "city only", stateID: "24", cityID: "x", wantMsg: MsgInvalidCityID},
		{name: "both", stateID: "a", cityID: "b", wantMsg: MsgInvalidIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAddressRepository{
				createFunc: func(context.Context, *model.Address) error {
					t.Fatal("create must not be reached")
					return nil
				},
			}
			_, _, err := newTestService(repo, stubDeliveries{}, nil).Create(context.Background(), tt.stateID, tt.cityID, validInput())
			requireAppError(t, err, http.StatusBadRequest, tt.wantMsg)
		})
	}
}

func TestCreate_ParentGates(t *testing.T) {
	svc := newTestService(&mockAddressRepository{}, stubDeliveries{}, nil)

	_, _, err := svc.Create(context.Background(), "99", "5", validInput())
	requireAppError(t, err, http.StatusNotFound, MsgStateNotFound)

	_, _, err = svc.Create(context.Background(), "24", "99", validInput())
	requireAppError(t, err, http.StatusNotFound, MsgCityNotFound)

	_, _, err = svc.Create(context.Background(), "25", "5", validInput())
	requireAppError(t, err, http.StatusBadRequest, MsgCityStateMismatch)
}

func TestCreate_BodyValidation(t *testing.T) {
	svc := newTestService(&mockAddressRepository{}, stubDeliveries{}, nil)

	_, _, err := svc.Create(context.Background(), "24", "5", &model.AddressInput{Street: "Rua A"})
	requireAppError(t, err, http.StatusBadRequest, validator.MsgRequiredFields)
}

func TestCreate_Success(t *testing.T) {
	var created *model.Address
	recorder := &events.Recorder{}
	svc := newTestService(&mockAddressRepository{
		createFunc: func(_ context.Context, address *model.Address) error {
			created = address
			address.ID = 501
			return nil
		},
	}, stubDeliveries{}, recorder)

	address, existed, err := svc.Create(context.Background(), "24", "5", validInput())
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, int64(501), address.ID)
	assert.Equal(t, "89201100", created.Cep)
	assert.Equal(t, "", created.Complement)
	assert.Equal(t, int64(5), created.CityID)
	assert.Equal(t, []string{events.AddressCreated}, recorder.Types())
}

func TestCreate_DuplicateReturnsExisting(t *testing.T) {
	existing := &model.Address{ID: 42, Street: "rua xv de novembro", Number: 100, Cep: "89201100", CityID: 5}
	svc := newTestService(&mockAddressRepository{
		findDuplicateFunc: func(_ context.Context, key repository.NaturalKey) (*model.Address, error) {
			assert.Equal(t, repository.NaturalKey{CityID: 5, Street: "Rua XV de Novembro", Number: 100, Cep: "89201100"}, key)
			return existing, nil
		},
		createFunc: func(context.Context, *model.Address) error {
			t.Fatal("duplicate must not be inserted")
			return nil
		},
	}, stubDeliveries{}, nil)

	address, existed, err := svc.Create(context.Background(), "24", "5", validInput())
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, int64(42), address.ID)
}

func TestCreate_UniqueViolationFallsBackToExisting(t *testing.T) {
	calls := 0
	svc := newTestService(&mockAddressRepository{
		findDuplicateFunc: func(context.Context, repository.NaturalKey) (*model.Address, error) {
			calls++
			if calls == 1 {
				return nil, addresserrors.ErrNotFound
			}
			return &model.Address{ID: 43}, nil
		},
		createFunc: func(context.Context, *model.Address) error {
			return fmt.Errorf("%w: race", addresserrors.ErrDuplicate)
		},
	}, stubDeliveries{}, nil)

	address, existed, err := svc.Create(context.Background(), "24", "5", validInput())
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, int64(43), address.ID)
}

func TestCreate_PersistenceFailure(t *testing.T) {
	svc := newTestService(&mockAddressRepository{
		createFunc: func(context.Context, *model.Address) error { return errors.New("connection reset") },
	}, stubDeliveries{}, nil)

	_, _, err := svc.Create(context.Background(), "24", "5", validInput())
	requireAppError(t, err, http.StatusBadRequest, "")
}

func storedAddress() *model.Address {
	return &model.Address{ID: 7, Street: "Rua A", Number: 10, Complement: "", Cep: "89229780", CityID: 5}
}

func TestUpdate_NotFound(t *testing.T) {
	_, err := newTestService(&mockAddressRepository{}, stubDeliveries{}, nil).
		Update(context.Background(), "7", &model.AddressInput{Street: "Rua B"})
	requireAppError(t, err, http.StatusNotFound, MsgAddressNotFound)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	svc := newTestService(&mockAddressRepository{
		findByIDFunc: func(context.Context, int64) (*model.Address, error) { return storedAddress(), nil },
	}, stubDeliveries{}, nil)

	_, err := svc.Update(context.Background(), "7", &model.AddressInput{})
	requireAppError(t, err, http.StatusBadRequest, MsgNothingToUpdate)
}

func TestUpdate_OnlyComplement(t *testing.T) {
	var saved *model.Address
	recorder := &events.Recorder{}
	svc := newTestService(&mockAddressRepository{
		findByIDFunc: func(context.Context, int64) (*model.Address, error) { return storedAddress(), nil },
		updateFunc: func(_ context.Context, address *model.Address) error {
			saved = address
			return nil
		},
	}, stubDeliveries{}, recorder)

	_, err := svc.Update(context.Background(), "7", &model.AddressInput{Complement: "Fundos"})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Rua A", saved.Street)
	assert.Equal(t, 10, saved.Number)
	assert.Equal(t, "89229780", saved.Cep)
	assert.Equal(t, "Fundos", saved.Complement)
	assert.Equal(t, []string{events.AddressUpdated}, recorder.Types())
}

func TestUpdate_PersistenceFailureIsForbidden(t *testing.T) {
	svc := newTestService(&mockAddressRepository{
		findByIDFunc: func(context.Context, int64) (*model.Address, error) { return storedAddress(), nil },
		updateFunc:   func(context.Context, *model.Address) error { return errors.New("boom") },
	}, stubDeliveries{}, nil)

	_, err := svc.Update(context.Background(), "7", &model.AddressInput{Street: "Rua B"})
	requireAppError(t, err, http.StatusForbidden, "")
}

func TestDelete(t *testing.T) {
	found := func(context.Context, int64) (*model.Address, error) { return storedAddress(), nil }

	t.Run("not found", func(t *testing.T) {
		err := newTestService(&mockAddressRepository{}, stubDeliveries{}, nil).Delete(context.Background(), "7")
		requireAppError(t, err, http.StatusNotFound, "Address not found.")
	})

	t.Run("referenced by deliveries", func(t *testing.T) {
		repo := &mockAddressRepository{
			findByIDFunc: found,
			deleteFunc: func(context.Context, int64) error {
				t.Fatal("referenced address must not be deleted")
				return nil
			},
		}
		err := newTestService(repo, stubDeliveries{count: 1}, nil).Delete(context.Background(), "7")
		requireAppError(t, err, http.StatusBadRequest, MsgAddressInUse)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		repo := &mockAddressRepository{
			findByIDFunc: found,
			deleteFunc: func(_ context.Context, id int64) error {
				return fmt.Errorf("%w: %d", addresserrors.ErrInUse, id)
			},
		}
		err := newTestService(repo, stubDeliveries{}, nil).Delete(context.Background(), "7")
		requireAppError(t, err, http.StatusBadRequest, MsgAddressInUse)
	})

	t.Run("unreferenced", func(t *testing.T) {
		var deleted int64
		recorder := &events.Recorder{}
		repo := &mockAddressRepository{
			findByIDFunc: found,
			deleteFunc: func(_ context.Context, id int64) error {
				deleted = id
				return nil
			},
		}
		require.NoError(t, newTestService(repo, stubDeliveries{}, recorder).Delete(context.Background(), "7"))
		assert.Equal(t, int64(7), deleted)
		assert.Equal(t, []string{events.AddressDeleted}, recorder.Types())
	})
}

func TestList_Filters(t *testing.T) {
	var got repository.Filter
	svc := newTestService(&mockAddressRepository{
		findAllFunc: func(_ context.Context, filter repository.Filter) ([]*model.Address, error) {
			got = filter
			return []*model.Address{storedAddress()}, nil
		},
	}, stubDeliveries{}, nil)

	addresses, err := svc.List(context.Background(), "5", " xv ", "89201-100")
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
	require.NotNil(t, got.CityID)
	assert.Equal(t, int64(5), *got.CityID)
	assert.Equal(t, "xv", got.Street)
	assert.Equal(t, "89201100", got.Cep)

	_, err = svc.List(context.Background(), "", "", "abc")
	require.NoError(t, err)
	assert.Nil(t, got.CityID)
	assert.Equal(t, "abc", got.Cep)
}

func TestList_InvalidCity(t *testing.T) {
	_, err := newTestService(&mockAddressRepository{}, stubDeliveries{}, nil).List(context.Background(), "x", "", "")
	requireAppError(t, err, http.StatusBadRequest, MsgInvalidCityID)
}

func TestList_PersistenceFailureIsForbidden(t *testing.T) {
	svc := newTestService(&mockAddressRepository{
		findAllFunc: func(context.Context, repository.Filter) ([]*model.Address, error) { return nil, errors.New("down") },
	}, stubDeliveries{}, nil)

	_, err := svc.List(context.Background(), "", "", "")
	requireAppError(t, err, http.StatusForbidden, "")
}
