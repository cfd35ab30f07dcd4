package main

import (
	"context"
	"flag"
	"time"

	mongoMigration "marketplace/internal/migrations/mongo"
	pgMigration "marketplace/internal/migrations/postgres"
	"marketplace/pkg/config"
)

const JobName = "catalog-migration"

func main() {
	down := flag.Bool("down", false, "roll back every postgres migration instead of applying them")
	skipSeed := flag.Bool("skip-seed", false, "do not load reference data")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetStore()
	defer cfg.GracefulShutdown()
	cfg.Log.Info("Starting migration job", "driver", cfg.StoreDriver, "down", *down)

	var err error
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		err = migrateMongo(ctx, cfg, *skipSeed)
	default:
		err = migratePostgres(ctx, cfg, *down, *skipSeed)
	}
	if err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration job aborted")
	}
	cfg.Log.Info("Migration completed successfully")
}

func migratePostgres(ctx context.Context, cfg *config.Config, down, skipSeed bool) error {
	db := cfg.Client.Postgres
	if down {
		return pgMigration.Down(db, cfg.Log)
	}
	if err := pgMigration.Up(db, cfg.Log); err != nil {
		return err
	}
	if skipSeed {
		return nil
	}
	return pgMigration.Seed(ctx, db, cfg.Log)
}

func migrateMongo(ctx context.Context, cfg *config.Config, skipSeed bool) error {
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		return err
	}
	if skipSeed {
		return nil
	}
	return mongoMigration.Seed(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
}
