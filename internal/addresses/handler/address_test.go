package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"

	"github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockAddressService struct {
	createFunc func(ctx context.Context, stateID, cityID string, in *model.AddressInput) (*model.Address, bool, error)
	updateFunc func(ctx context.Context, addressID string, in *model.AddressInput) (*model.Address, error)
	deleteFunc func(ctx context.Context, addressID string) error
	listFunc   func(ctx context.Context, cityID, street, cep string) ([]*model.Address, error)
}

func (m *mockAddressService) Create(ctx context.Context, stateID, cityID string, in *model.AddressInput) (*model.Address, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, stateID, cityID, in)
	}
	return &model.Address{ID: 1}, false, nil
}

func (m *mockAddressService) Update(ctx context.Context, addressID string, in *model.AddressInput) (*model.Address, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, addressID, in)
	}
	return &model.Address{ID: 1}, nil
}

func (m *mockAddressService) Delete(ctx context.Context, addressID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, addressID)
	}
	return nil
}

func (m *mockAddressService) List(ctx context.Context, cityID, street, cep string) ([]*model.Address, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, cityID, street, cep)
	}
	return []*model.Address{}, nil
}

func newRouter(svc *mockAddressService) *httprouter.Router {
	log := logger.NewNop()
	router := httprouter.New()
	NewAddressHandler(svc, log).RegisterRoutes(router, middleware.NewGate(testSecret, log))
	return router
}

func do(t *testing.T, router http.Handler, method, path, body string, permissions ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(permissions) > 0 {
		token, err := middleware.IssueToken(testSecret, "tester", permissions, time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_New(t *testing.T) {
	router := newRouter(&mockAddressService{
		createFunc: func(_ context.Context, stateID, cityID string, in *model.AddressInput) (*model.Address, bool, error) {
			assert.Equal(t, "24", stateID)
			assert.Equal(t, "5", cityID)
			assert.Equal(t, "Rua A", in.Street)
			assert.NotNil(t, in.Number)
			return &model.Address{ID: 88}, false, nil
		},
	})

	rec := do(t, router, http.MethodPost, "/api/v1/states/24/cities/5/addresses",
		`{"street":"Rua A","number":10,"cep":"89229780"}`, model.PermissionWrite)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"address_id":88}`, rec.Body.String())
}

func TestCreate_Existing(t *testing.T) {
	router := newRouter(&mockAddressService{
		createFunc: func(context.Context, string, string, *model.AddressInput) (*model.Address, bool, error) {
			return &model.Address{ID: 42}, true, nil
		},
	})

	rec := do(t, router, http.MethodPost, "/api/v1/states/24/cities/5/addresses",
		`{"street":"Rua A","number":10,"cep":"89229780"}`, model.PermissionWrite)
	require.Equal(t, http.StatusOK, rec.Code)

	var body AddressCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MsgAddressExists, body.Message)
	assert.Equal(t, int64(42), body.AddressID)
}

func TestCreate_ServiceError(t *testing.T) {
	router := newRouter(&mockAddressService{
		createFunc: func(context.Context, string, string, *model.AddressInput) (*model.Address, bool, error) {
			return nil, false, apperrors.InvalidInput("The 'state_id' param must be an integer")
		},
	})

	rec := do(t, router, http.MethodPost, "/api/v1/states/abc/cities/5/addresses", `{}`, model.PermissionWrite)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "state_id")
}

func TestCreate_RequiresWritePermission(t *testing.T) {
	rec := do(t, newRouter(&mockAddressService{}), http.MethodPost, "/api/v1/states/24/cities/5/addresses", `{}`, model.PermissionRead)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestList(t *testing.T) {
	router := newRouter(&mockAddressService{
		listFunc: func(_ context.Context, cityID, street, cep string) ([]*model.Address, error) {
			assert.Equal(t, "5", cityID)
			assert.Equal(t, "xv", street)
			assert.Equal(t, "", cep)
			return []*model.Address{{ID: 1, Street: "Rua XV", CityID: 5}}, nil
		},
	})

	rec := do(t, router, http.MethodGet, "/api/v1/addresses?city_id=5&street=xv", "", model.PermissionRead)
	require.Equal(t, http.StatusOK, rec.Code)

	var body AddressesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MsgAddressesFound, body.Message)
	assert.Len(t, body.Addresses, 1)
}

func TestList_EmptyIsNoContent(t *testing.T) {
	rec := do(t, newRouter(&mockAddressService{}), http.MethodGet, "/api/v1/addresses", "", model.PermissionRead)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdate(t *testing.T) {
	router := newRouter(&mockAddressService{
		updateFunc: func(_ context.Context, addressID string, in *model.AddressInput) (*model.Address, error) {
			assert.Equal(t, "7", addressID)
			assert.Equal(t, "Fundos", in.Complement)
			return &model.Address{ID: 7}, nil
		},
	})

	rec := do(t, router, http.MethodPatch, "/api/v1/addresses/7", `{"complement":"Fundos"}`, model.PermissionUpdate)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Address updated successfully"}`, rec.Body.String())
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	router := newRouter(&mockAddressService{
		updateFunc: func(context.Context, string, *model.AddressInput) (*model.Address, error) {
			return nil, apperrors.InvalidInput("You have to fill in at least one field for the update")
		},
	})

	rec := do(t, router, http.MethodPatch, "/api/v1/addresses/7", `{}`, model.PermissionUpdate)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	rec := do(t, newRouter(&mockAddressService{}), http.MethodDelete, "/api/v1/addresses/7", "", model.PermissionDelete)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	router := newRouter(&mockAddressService{
		deleteFunc: func(context.Context, string) error {
			return apperrors.InvalidInput("This address is being used, therefore cannot be deleted.")
		},
	})
	rec = do(t, router, http.MethodDelete, "/api/v1/addresses/7", "", model.PermissionDelete)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
