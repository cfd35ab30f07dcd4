package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	addresserrors "marketplace/internal/addresses/errors"
	"marketplace/pkg/config"
	"marketplace/pkg/db/postgres"
	"marketplace/pkg/model"
)

const addressColumns = "id, street, number, complement, cep, city_id, created_at, updated_at"

type postgresAddressRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

func NewPostgresAddressRepository(cfg *config.Config) AddressRepository {
	return &postgresAddressRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

type addressRow struct {
	ID            int64  `db:"id"`
	Street        string `db:"street"`
	Number        int    `db:"number"`
	Complement    string `db:"complement"`
	Cep           string `db:"cep"`
	CityID        int64  `db:"city_id"`
	CityName      string `db:"city_name"`
	StateID       int64  `db:"state_id"`
	StateName     string `db:"state_name"`
	StateInitials string `db:"state_initials"`
}

func (row addressRow) toModel() *model.Address {
	return &model.Address{
		ID:         row.ID,
		Street:     row.Street,
		Number:     row.Number,
		Complement: row.Complement,
		Cep:        row.Cep,
		CityID:     row.CityID,
		City: &model.City{
			ID:   row.CityID,
			Name: row.CityName,
			State: &model.State{
				ID:       row.StateID,
				Name:     row.StateName,
				Initials: row.StateInitials,
			},
		},
	}
}

func (r *postgresAddressRepository) FindByID(ctx context.Context, id int64) (*model.Address, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var address model.Address
	err := r.db.GetContext(ctx, &address, "SELECT "+addressColumns+" FROM addresses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", addresserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return &address, nil
}

func (r *postgresAddressRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Address, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var conditions []string
	var args []any
	if filter.CityID != nil {
		args = append(args, *filter.CityID)
		conditions = append(conditions, fmt.Sprintf("a.city_id = $%d", len(args)))
	}
	if filter.Street != "" {
		args = append(args, postgres.ContainsPattern(filter.Street))
		conditions = append(conditions, fmt.Sprintf("a.street ILIKE $%d", len(args)))
	}
	if filter.Cep != "" {
		args = append(args, filter.Cep)
		conditions = append(conditions, fmt.Sprintf("a.cep = $%d", len(args)))
	}

	query := `SELECT a.id, a.street, a.number, a.complement, a.cep, a.city_id,
	c.name AS city_name, s.id AS state_id, s.name AS state_name, s.initials AS state_initials
FROM addresses a
JOIN cities c ON c.id = a.city_id
JOIN states s ON s.id = c.state_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.id"

	var rows []addressRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	addresses := make([]*model.Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, row.toModel())
	}
	return addresses, nil
}

func (r *postgresAddressRepository) FindDuplicate(ctx context.Context, key NaturalKey) (*model.Address, error) {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var address model.Address
	err := r.db.GetContext(ctx, &address,
		"SELECT "+addressColumns+` FROM addresses
WHERE city_id = $1 AND lower(street) = lower($2) AND number = $3 AND lower(cep) = lower($4)
ORDER BY id LIMIT 1`,
		key.CityID, key.Street, key.Number, key.Cep,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, addresserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check duplicate address: %w", err)
	}
	return &address, nil
}

func (r *postgresAddressRepository) Create(ctx context.Context, address *model.Address) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO addresses (street, number, complement, cep, city_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`,
		address.Street, address.Number, address.Complement, address.Cep, address.CityID, now,
	).Scan(&address.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s %d", addresserrors.ErrDuplicate, address.Street, address.Number)
		}
		return fmt.Errorf("failed to create address: %w", err)
	}

	address.CreatedAt = now
	address.UpdatedAt = now
	return nil
}

func (r *postgresAddressRepository) Update(ctx context.Context, address *model.Address) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Microsecond)
	result, err := r.db.ExecContext(ctx,
		`UPDATE addresses SET street = $1, number = $2, complement = $3, cep = $4, updated_at = $5 WHERE id = $6`,
		address.Street, address.Number, address.Complement, address.Cep, now, address.ID,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %d", addresserrors.ErrDuplicate, address.ID)
		}
		return fmt.Errorf("failed to update address: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", addresserrors.ErrNotFound, address.ID)
	}

	address.UpdatedAt = now
	return nil
}

func (r *postgresAddressRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := postgres.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1", id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %d", addresserrors.ErrInUse, id)
		}
		return fmt.Errorf("failed to delete address: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", addresserrors.ErrNotFound, id)
	}
	return nil
}
