package main

import (
	"context"
	"fmt"

	mem "patient-history/internal/adapters/storage/memory"
	mongostore "patient-history/internal/adapters/storage/mongo"
	pg "patient-history/internal/adapters/storage/postgres"
	"patient-history/internal/config"
	"patient-history/internal/domain/history"
)

// openHistoryStore construye el record store según STORE_DRIVER.
// La func devuelta libera el cliente/pool; nunca es nil si err == nil.
func openHistoryStore(ctx context.Context, cfg *config.Config) (history.Repository, func(), error) {
	switch cfg.ResolvedStoreDriver() {
	case config.DriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI, cfg.DBMaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		return mongostore.NewHistoryRepo(coll), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverPostgres:
		db, err := pg.Open(cfg.DatabaseDSN, cfg.DBMaxOpenConns)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		return pg.NewHistoryRepo(db), func() { _ = db.Close() }, nil

	default:
		return mem.NewHistoryRepo(), func() {}, nil
	}
}

// migrateHistoryStore crea índices (mongo) o tabla + índices (postgres).
func migrateHistoryStore(ctx context.Context, cfg *config.Config) (string, error) {
	driver := cfg.ResolvedStoreDriver()
	switch driver {
	case config.DriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI, cfg.DBMaxOpenConns)
		if err != nil {
			return driver, err
		}
		defer client.Disconnect(context.Background())

		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		return driver, mongostore.EnsureIndexes(ctx, coll)

	case config.DriverPostgres:
		db, err := pg.Open(cfg.DatabaseDSN, cfg.DBMaxOpenConns)
		if err != nil {
			return driver, fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		return driver, pg.EnsureSchema(ctx, db)

	default:
		return driver, nil
	}
}
