package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	stateerrors "marketplace/internal/states/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

const stateColumns = "id, name, initials"

var (
	foldedStateName = postgres.FoldedColumn("name")
	foldedCityName  = postgres.FoldedColumn("c.name")
)

type postgresStateRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresStateRepository(cfg *config.Config) StateRepository {
	return &postgresStateRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresStateRepository) FindByID(ctx context.Context, id int64) (*model.State, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var state model.State
	err := r.db.GetContext(ctx, &state, "SELECT "+stateColumns+" FROM states WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", stateerrors.ErrStateNotFound, id)
		}
		return nil, fmt.Errorf("failed to find state: %w", err)
	}
	return &state, nil
}

func (r *postgresStateRepository) FindAll(ctx context.Context) ([]*model.State, error) {
	return r.selectStates(ctx, "SELECT "+stateColumns+" FROM states ORDER BY id")
}

func (r *postgresStateRepository) FindByInitials(ctx context.Context, term string) ([]*model.State, error) {
	return r.selectStates(ctx,
		"SELECT "+stateColumns+" FROM states WHERE initials ILIKE $1 ORDER BY id",
		postgres.ContainsPattern(term),
	)
}

func (r *postgresStateRepository) FindByName(ctx context.Context, term string) ([]*model.State, error) {
	return r.selectStates(ctx,
		"SELECT "+stateColumns+" FROM states WHERE "+foldedStateName+" ILIKE $1 ORDER BY id",
		postgres.ContainsPattern(term),
	)
}

func (r *postgresStateRepository) selectStates(ctx context.Context, query string, args ...any) ([]*model.State, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var states []*model.State
	if err := r.db.SelectContext(ctx, &states, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

type postgresCityRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresCityRepository(cfg *config.Config) CityRepository {
	return &postgresCityRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

// cityRow is a city joined with its state.
type cityRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	StateID       int64  `db:"state_id"`
	StateName     string `db:"state_name"`
	StateInitials string `db:"state_initials"`
}

func (row cityRow) toModel() *model.City {
	return &model.City{
		ID:      row.ID,
		Name:    row.Name,
		StateID: row.StateID,
		State: &model.State{
			ID:       row.StateID,
			Name:     row.StateName,
			Initials: row.StateInitials,
		},
	}
}

const citySelect = `SELECT c.id, c.name, c.state_id, s.name AS state_name, s.initials AS state_initials
FROM cities c JOIN states s ON s.id = c.state_id`

func (r *postgresCityRepository) FindByID(ctx context.Context, id int64) (*model.City, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var row cityRow
	err := r.db.GetContext(ctx, &row, citySelect+" WHERE c.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", stateerrors.ErrCityNotFound, id)
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresCityRepository) FindByState(ctx context.Context, stateID int64, name string) ([]*model.City, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := citySelect + " WHERE c.state_id = $1"
	args := []any{stateID}
	if name != "" {
		query += " AND " + foldedCityName + " ILIKE $2"
		args = append(args, postgres.ContainsPattern(name))
	}
	query += " ORDER BY c.id"

	var rows []cityRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}

	cities := make([]*model.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, row.toModel())
	}
	return cities, nil
}

func (r *postgresCityRepository) FindDuplicate(ctx context.Context, stateID int64, foldedName string) (*model.City, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var row cityRow
	err := r.db.GetContext(ctx, &row,
		citySelect+" WHERE c.state_id = $1 AND "+foldedCityName+" ILIKE $2 ORDER BY c.id LIMIT 1",
		stateID, postgres.ContainsPattern(foldedName),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, stateerrors.ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to check duplicate city: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresCityRepository) Create(ctx context.Context, city *model.City) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	err := r.db.QueryRowxContext(ctx,
		"INSERT INTO cities (name, state_id) VALUES ($1, $2) RETURNING id",
		city.Name, city.StateID,
	).Scan(&city.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", stateerrors.ErrDuplicateCity, city.Name)
		}
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}
