package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/marispinelli3322/tutor-copilot/internal/store"
)

// openStore builds the configured store backend, runs migrations and seeds
// the sqlite demo database when a fixture is configured.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil

	case "sqlite":
		sq, err := store.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sq.Migrate(ctx); err != nil {
			sq.Close()
			return nil, err
		}
		if cfg.Store.FixturePath != "" {
			if err := sq.LoadFixture(ctx, cfg.Store.FixturePath); err != nil {
				sq.Close()
				return nil, err
			}
			zap.L().Info("fixture loaded", zap.String("path", cfg.Store.FixturePath))
		}
		return sq, nil

	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
