package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	permissionerrors "marketplace/internal/permissions/errors"
	"marketplace/internal/permissions/repository"
	"marketplace/internal/permissions/validator"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

type PermissionService interface {
	Create(ctx context.Context, description string) (*model.Permission, error)
}

type permissionService struct {
	repo      repository.PermissionRepository
	validator *validator.PermissionValidator
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewPermissionService(
	repo repository.PermissionRepository,
	validator *validator.PermissionValidator,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) PermissionService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &permissionService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

func (s *permissionService) Create(ctx context.Context, description string) (*model.Permission, error) {
	permission := &model.Permission{Description: sanitizer.NormalizeDescription(description)}
	if err := s.validator.Validate(permission); err != nil {
		s.log.Warn("Permission validation failed", "description", permission.Description, "error", err)
		return nil, apperrors.InvalidInput(err.Error())
	}

	_, err := s.repo.FindByDescription(ctx, permission.Description)
	switch {
	case err == nil:
		s.metrics.RecordOperation("create_permission", "conflict")
		return nil, permissionExists(permission.Description)
	case !errors.Is(err, permissionerrors.ErrNotFound):
		s.log.Error("Failed to check duplicate permission", "description", permission.Description, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create permission", err)
	}

	if err := s.repo.Create(ctx, permission); err != nil {
		if errors.Is(err, permissionerrors.ErrDuplicate) {
			s.metrics.RecordOperation("create_permission", "conflict")
			return nil, permissionExists(permission.Description)
		}
		s.log.Error("Failed to create permission", "description", permission.Description, "error", err)
		s.metrics.RecordOperation("create_permission", "error")
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create permission", err)
	}

	s.metrics.RecordOperation("create_permission", "created")
	s.publisher.Publish(ctx, events.New(events.PermissionCreated, permission.ID, permission))
	s.log.Info("Permission successfully created", "id", permission.ID, "description", permission.Description)
	return permission, nil
}

func permissionExists(description string) *apperrors.AppError {
	return apperrors.InvalidInput(fmt.Sprintf("The permission %s already exists", description))
}
