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

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockPermissionService struct {
	createFunc func(ctx context.Context, description string) (*model.Permission, error)
}

func (m *mockPermissionService) Create(ctx context.Context, description string) (*model.Permission, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, description)
	}
	return &model.Permission{ID: 1, Description: description}, nil
}

func post(t *testing.T, svc *mockPermissionService, body string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewNop()
	router := httprouter.New()
	NewPermissionHandler(svc, log).RegisterRoutes(router, middleware.NewGate(testSecret, log))

	token, err := middleware.IssueToken(testSecret, "admin", []string{model.PermissionWrite}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/permissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	rec := post(t, &mockPermissionService{
		createFunc: func(_ context.Context, description string) (*model.Permission, error) {
			assert.Equal(t, "export", description)
			return &model.Permission{ID: 7, Description: "EXPORT"}, nil
		},
	}, `{"description":"export"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Permission successfully created.","id":7}`, rec.Body.String())
}

func TestCreate_Duplicate(t *testing.T) {
	rec := post(t, &mockPermissionService{
		createFunc: func(context.Context, string) (*model.Permission, error) {
			return nil, apperrors.InvalidInput("The permission READ already exists")
		},
	}, `{"description":"read"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
