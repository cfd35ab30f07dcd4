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

type mockProductSaleService struct {
	updatePriceFunc  func(ctx context.Context, saleID, productID, price string) (*model.ProductSale, error)
	updateAmountFunc func(ctx context.Context, saleID, productID, amount string) (*model.ProductSale, error)
}

func (m *mockProductSaleService) UpdatePrice(ctx context.Context, saleID, productID, price string) (*model.ProductSale, error) {
	if m.updatePriceFunc != nil {
		return m.updatePriceFunc(ctx, saleID, productID, price)
	}
	return &model.ProductSale{}, nil
}

func (m *mockProductSaleService) UpdateAmount(ctx context.Context, saleID, productID, amount string) (*model.ProductSale, error) {
	if m.updateAmountFunc != nil {
		return m.updateAmountFunc(ctx, saleID, productID, amount)
	}
	return &model.ProductSale{}, nil
}

func patch(t *testing.T, svc *mockProductSaleService, path string, permission string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := httprouter.New()
	NewProductSaleHandler(svc, log).RegisterRoutes(router, middleware.NewGate(testSecret, log))

	token, err := middleware.IssueToken(testSecret, "tester", []string{permission}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUpdatePrice(t *testing.T) {
	rec := patch(t, &mockProductSaleService{
		updatePriceFunc: func(_ context.Context, saleID, productID, price string) (*model.ProductSale, error) {
			assert.Equal(t, "1", saleID)
			assert.Equal(t, "2", productID)
			assert.Equal(t, "999.99", price)
			return &model.ProductSale{ID: 5}, nil
		},
	}, "/api/v1/sales/1/products/2/price/999.99", model.PermissionUpdate)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUpdateAmount_Error(t *testing.T) {
	rec := patch(t, &mockProductSaleService{
		updateAmountFunc: func(context.Context, string, string, string) (*model.ProductSale, error) {
			return nil, apperrors.NotFound("Sale or product not found")
		},
	}, "/api/v1/sales/1/products/2/amount/3", model.PermissionUpdate)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdate_RequiresUpdatePermission(t *testing.T) {
	rec := patch(t, &mockProductSaleService{}, "/api/v1/sales/1/products/2/amount/3", model.PermissionRead)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
