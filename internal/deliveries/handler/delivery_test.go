package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/pkg/logger"
	"marketplace/pkg/middleware"
	"marketplace/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockDeliveryService struct {
	deliveries []*model.Delivery
}

func (m *mockDeliveryService) List(context.Context, string, string) ([]*model.Delivery, error) {
	return m.deliveries, nil
}

func get(t *testing.T, svc *mockDeliveryService) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := httprouter.New()
	NewDeliveryHandler(svc, log).RegisterRoutes(router, middleware.NewGate(testSecret, log))

	token, err := middleware.IssueToken(testSecret, "tester", []string{model.PermissionRead}, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deliveries?address_id=3", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestList(t *testing.T) {
	rec := get(t, &mockDeliveryService{deliveries: []*model.Delivery{{ID: 1, AddressID: 3, SaleID: 9}}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"address_id":3`)

	rec = get(t, &mockDeliveryService{})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
