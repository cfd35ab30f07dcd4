package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"marketplace/internal/migrations/seed"
	"marketplace/pkg/logger"
)

// Seed loads the reference data. Rows that already exist are left untouched.
func Seed(ctx context.Context, db *sqlx.DB, log *logger.Logger) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range seed.States {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO states (name, initials) VALUES ($1, $2) ON CONFLICT (initials) DO NOTHING`,
			s.Name, s.Initials,
		); err != nil {
			return fmt.Errorf("failed to seed state %s: %w", s.Initials, err)
		}
	}

	for _, c := range seed.Cities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cities (name, state_id)
SELECT $1, s.id FROM states s
WHERE s.initials = $2
  AND NOT EXISTS (SELECT 1 FROM cities c WHERE c.state_id = s.id AND lower(c.name) = lower($1))`,
			c.Name, c.StateInitials,
		); err != nil {
			return fmt.Errorf("failed to seed city %s: %w", c.Name, err)
		}
	}

	for _, name := range seed.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name,
		); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}

	for _, p := range seed.Products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO products (name, suggested_price, category_id)
SELECT $1, $2, c.id FROM categories c WHERE c.name = $3
ON CONFLICT (name) DO NOTHING`,
			p.Name, p.SuggestedPrice, p.Category,
		); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Name, err)
		}
	}

	for _, description := range seed.Permissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO permissions (description) VALUES ($1) ON CONFLICT (description) DO NOTHING`, description,
		); err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	log.Info("Postgres reference data seeded",
		"states", len(seed.States),
		"cities", len(seed.Cities),
		"categories", len(seed.Categories),
		"products", len(seed.Products),
		"permissions", len(seed.Permissions),
	)
	return nil
}
