package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	stateerrors "marketplace/internal/states/errors"
	"marketplace/internal/states/repository"
	"marketplace/internal/states/validator"
	apperrors "marketplace/pkg/errors"
	"marketplace/pkg/events"
	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
	"marketplace/pkg/model"
	"marketplace/pkg/sanitizer"
)

const (
	MsgInvalidStateID = "The 'state_id' param must be an integer"
	MsgStateNotFound  = "Couldn't find any state with the given 'state_id'"
)

type StateService interface {
	List(ctx context.Context, names []string, initials []string) ([]*model.State, error)
	GetByID(ctx context.Context, stateID string) (*model.State, error)
	ListCities(ctx context.Context, stateID string, name string) ([]*model.City, error)
	CreateCity(ctx context.Context, stateID string, name string) (*model.City, error)
}

type stateService struct {
	states    repository.StateRepository
	cities    repository.CityRepository
	validator *validator.CityValidator
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewStateService(
	states repository.StateRepository,
	cities repository.CityRepository,
	validator *validator.CityValidator,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) StateService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &stateService{
		states:    states,
		cities:    cities,
		validator: validator,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

// List returns every state when no filter is given. Otherwise it returns the union
// of the initials matches and the name matches, first occurrence of each id kept.
func (s *stateService) List(ctx context.Context, names []string, initials []string) ([]*model.State, error) {
	initials = sanitizer.NormalizeStringSlice(initials, sanitizer.NormalizeInitials)
	names = sanitizer.NormalizeSearchTerms(names)

	if len(names) == 0 && len(initials) == 0 {
		states, err := s.states.FindAll(ctx)
		if err != nil {
			s.log.Error("Failed to list states", "error", err)
			return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list states", err)
		}
		s.log.Debug("States listed", "count", len(states))
		return states, nil
	}

	seen := make(map[int64]bool)
	result := make([]*model.State, 0)
	collect := func(states []*model.State) {
		for _, st := range states {
			if !seen[st.ID] {
				seen[st.ID] = true
				result = append(result, st)
			}
		}
	}

	for _, term := range initials {
		states, err := s.states.FindByInitials(ctx, term)
		if err != nil {
			s.log.Error("Failed to filter states by initials", "initials", term, "error", err)
			return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list states", err)
		}
		collect(states)
	}

	for _, term := range names {
		states, err := s.states.FindByName(ctx, term)
		if err != nil {
			s.log.Error("Failed to filter states by name", "name", term, "error", err)
			return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list states", err)
		}
		collect(states)
	}

	s.log.Debug("States filtered",
		"names", names,
		"initials", initials,
		"count", len(result),
	)
	return result, nil
}

func (s *stateService) GetByID(ctx context.Context, stateID string) (*model.State, error) {
	id, err := sanitizer.ParseID(stateID)
	if err != nil {
		s.log.Warn("Invalid state identifier", "state_id", stateID)
		return nil, apperrors.InvalidInput(MsgInvalidStateID)
	}

	return s.findState(ctx, id, http.StatusBadRequest)
}

func (s *stateService) ListCities(ctx context.Context, stateID string, name string) ([]*model.City, error) {
	id, err := sanitizer.ParseID(stateID)
	if err != nil {
		s.log.Warn("Invalid state identifier", "state_id", stateID)
		return nil, apperrors.InvalidInput(MsgInvalidStateID)
	}

	if _, err := s.findState(ctx, id, http.StatusBadRequest); err != nil {
		return nil, err
	}

	cities, err := s.cities.FindByState(ctx, id, sanitizer.Fold(sanitizer.TrimAndNormalize(name)))
	if err != nil {
		s.log.Error("Failed to list cities", "state_id", id, "error", err)
		return nil, apperrors.Persistence(http.StatusBadRequest, "Failed to list cities", err)
	}

	s.log.Debug("Cities listed", "state_id", id, "name", name, "count", len(cities))
	return cities, nil
}

// CreateCity attaches a new city to an existing state. A city whose folded name
// contains the candidate's folded name counts as a duplicate.
func (s *stateService) CreateCity(ctx context.Context, stateID string, name string) (*model.City, error) {
	id, err := sanitizer.ParseID(stateID)
	if err != nil {
		s.log.Warn("Invalid state identifier", "state_id", stateID)
		return nil, apperrors.InvalidInput(MsgInvalidStateID)
	}

	state, err := s.findState(ctx, id, http.StatusForbidden)
	if err != nil {
		return nil, err
	}

	city := &model.City{
		Name:    sanitizer.NormalizeName(name),
		StateID: state.ID,
	}
	if err := s.validator.Validate(city); err != nil {
		s.log.Warn("City validation failed", "state_id", id, "name", city.Name, "error", err)
		return nil, apperrors.InvalidInput(err.Error())
	}

	existing, err := s.cities.FindDuplicate(ctx, state.ID, sanitizer.Fold(city.Name))
	switch {
	case err == nil:
		s.log.Warn("City already exists",
			"state_id", state.ID,
			"name", city.Name,
			"existing_id", existing.ID,
		)
		s.metrics.RecordOperation("create_city", "conflict")
		return nil, cityConflict(city.Name, state.Name)
	case !errors.Is(err, stateerrors.ErrCityNotFound):
		s.log.Error("Failed to check duplicate city", "state_id", state.ID, "error", err)
		s.metrics.RecordOperation("create_city", "error")
		return nil, apperrors.Persistence(http.StatusForbidden, "Failed to create city", err)
	}

	if err := s.cities.Create(ctx, city); err != nil {
		if errors.Is(err, stateerrors.ErrDuplicateCity) {
			s.metrics.RecordOperation("create_city", "conflict")
			return nil, cityConflict(city.Name, state.Name)
		}
		s.log.Error("Failed to create city", "state_id", state.ID, "name", city.Name, "error", err)
		s.metrics.RecordOperation("create_city", "error")
		return nil, apperrors.Persistence(http.StatusForbidden, "Failed to create city", err)
	}

	city.State = state
	s.metrics.RecordOperation("create_city", "created")
	s.publisher.Publish(ctx, events.New(events.CityCreated, city.ID, city))
	s.log.Info("City created successfully",
		"id", city.ID,
		"name", city.Name,
		"state_id", state.ID,
	)
	return city, nil
}

// findState reports store failures with failStatus, which differs per operation.
func (s *stateService) findState(ctx context.Context, id int64, failStatus int) (*model.State, error) {
	state, err := s.states.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stateerrors.ErrStateNotFound) {
			s.log.Warn("State not found", "state_id", id)
			return nil, apperrors.NotFound(MsgStateNotFound)
		}
		s.log.Error("Failed to get state by ID", "state_id", id, "error", err)
		return nil, apperrors.Persistence(failStatus, "Failed to retrieve state", err)
	}
	return state, nil
}

func cityConflict(name, stateName string) *apperrors.AppError {
	return apperrors.Conflict(fmt.Sprintf("There is already a city with the name of %s in the state of %s", name, stateName))
}
