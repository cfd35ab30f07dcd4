package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	categoryerrors "marketplace/internal/categories/errors"
	"marketplace/internal/categories/repository"
	"marketplace/internal/categories/validator"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context, name string) ([]*model.Category, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	validator *validator.CategoryValidator
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewCategoryService(
	repo repository.CategoryRepository,
	validator *validator.CategoryValidator,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) CategoryService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &categoryService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// Create stores a category under its trimmed name. Names are compared exactly, so
// "Books" and "books" are distinct categories.
func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{Name: strings.TrimSpace(name)}
	if err := s.validator.Validate(category); err != nil {
		s.log.Warn("Category validation failed", "name", category.Name, "error", err)
		return nil, apperrors.InvalidInput(err.Error())
	}

	existing, err := s.repo.FindByName(ctx, category.Name)
	switch {
	case err == nil:
		s.log.Warn("Category already exists", "name", existing.Name, "existing_id", existing.ID)
		s.metrics.RecordOperation("create_category", "conflict")
		return nil, categoryConflict(existing.Name)
	case !errors.Is(err, categoryerrors.ErrNotFound):
		s.log.Error("Failed to check duplicate category", "name", category.Name, "error", err)
		s.metrics.RecordOperation("create_category", "error")
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create category", err)
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, categoryerrors.ErrDuplicate) {
			s.metrics.RecordOperation("create_category", "conflict")
			return nil, categoryConflict(category.Name)
		}
		s.log.Error("Failed to create category", "name", category.Name, "error", err)
		s.metrics.RecordOperation("create_category", "error")
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to create category", err)
	}

	s.metrics.RecordOperation("create_category", "created")
	s.publisher.Publish(ctx, events.New(events.CategoryCreated, category.ID, category))
	s.log.Info("Category created successfully", "id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) List(ctx context.Context, name string) ([]*model.Category, error) {
	term := sanitizer.TrimAndNormalize(name)
	categories, err := s.repo.FindAll(ctx, term)
	if err != nil {
		s.log.Error("Failed to list categories", "name", term, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list categories", err)
	}

	s.log.Debug("Categories listed", "name", term, "count", len(categories))
	return categories, nil
}

func categoryConflict(name string) *apperrors.AppError {
	return apperrors.Conflict(fmt.Sprintf("There is already a category named %s", name))
}
