package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockProductService struct {
	listFunc    func(ctx context.Context, name, categoryID string) ([]*model.Product, error)
	getByIDFunc func(ctx context.Context, productID string) (*model.Product, error)
}

func (m *mockProductService) List(ctx context.Context, name, categoryID string) ([]*model.Product, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, name, categoryID)
	}
	return []*model.Product{}, nil
}

func (m *mockProductService) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, productID)
	}
	return nil, apperrors.NotFound("Product not found")
}

func get(t *testing.T, svc *mockProductService, path string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := httprouter.New()
	NewProductHandler(svc, log).RegisterRoutes(router, middleware.NewGate(testSecret, log))

	token, err := middleware.IssueToken(testSecret, "tester", []string{model.PermissionRead}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	rec := get(t, &mockProductService{
		listFunc: func(_ context.Context, name, categoryID string) ([]*model.Product, error) {
			assert.Equal(t, "pc", name)
			assert.Equal(t, "1", categoryID)
			return []*model.Product{{ID: 4, Name: "Pc Gamer", SuggestedPrice: 5500, CategoryID: 1}}, nil
		},
	}, "/api/v1/products?name=pc&category_id=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Pc Gamer"`)

	assert.Equal(t, http.StatusNoContent, get(t, &mockProductService{}, "/api/v1/products").Code)
}

func TestGetByID(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, &mockProductService{}, "/api/v1/products/id/99").Code)

	rec := get(t, &mockProductService{
		getByIDFunc: func(_ context.Context, productID string) (*model.Product, error) {
			assert.Equal(t, "2", productID)
			return &model.Product{ID: 2, Name: "Notebook Dell"}, nil
		},
	}, "/api/v1/products/id/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":2`)
}
