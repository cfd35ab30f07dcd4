package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	permissionerrors "marketplace/internal/permissions/errors"
	"marketplace/internal/permissions/validator"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPermissionRepository struct {
	findFunc   func(ctx context.Context, description string) (*model.Permission, error)
	createFunc func(ctx context.Context, permission *model.Permission) error
}

func (m *mockPermissionRepository) FindByDescription(ctx context.Context, description string) (*model.Permission, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, description)
	}
	return nil, fmt.Errorf("%w: %s", permissionerrors.ErrNotFound, description)
}

func (m *mockPermissionRepository) Create(ctx context.Context, permission *model.Permission) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, permission)
	}
	permission.ID = 5
	return nil
}

func newTestService(repo *mockPermissionRepository, pub events.Publisher) PermissionService {
	log := logger.NewNop()
	return NewPermissionService(repo, validator.NewPermissionValidator(log), pub, nil, log)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
	assert.Equal(t, status, appErr.StatusCode())
}

func TestCreate_NormalizesDescription(t *testing.T) {
	var stored string
	recorder := &events.Recorder{}
	svc := newTestService(&mockPermissionRepository{
		createFunc: func(_ context.Context, permission *model.Permission) error {
			stored = permission.Description
			permission.ID = 9
			return nil
		},
	}, recorder)

	permission, err := svc.Create(context.Background(), "  export  ")
	require.NoError(t, err)
	assert.Equal(t, "EXPORT", stored)
	assert.Equal(t, int64(9), permission.ID)
	assert.Equal(t, []string{events.PermissionCreated}, recorder.Types())
}

func TestCreate_Invalid(t *testing.T) {
	svc := newTestService(&mockPermissionRepository{}, nil)

	_, err := svc.Create(context.Background(), "")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Create(context.Background(), "ab")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCreate_Duplicate(t *testing.T) {
	svc := newTestService(&mockPermissionRepository{
		findFunc: func(_ context.Context, description string) (*model.Permission, error) {
			return &model.Permission{ID: 1, Description: description}, nil
		},
	}, nil)

	_, err := svc.Create(context.Background(), "read")
	requireStatus(t, err, http.StatusBadRequest)

	svc = newTestService(&mockPermissionRepository{
		createFunc: func(context.Context, *model.Permission) error {
			return fmt.Errorf("%w: READ", permissionerrors.ErrDuplicate)
		},
	}, nil)
	_, err = svc.Create(context.Background(), "read")
	requireStatus(t, err, http.StatusBadRequest)
}
