package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
)

// errSQLiteMigrations is returned for --migrate with the sqlite driver,
// whose schema is created when the database is opened.
var errSQLiteMigrations = errors.New("migrations are only supported for the postgres driver")

// handleMigrations runs a single migration command against the configured
// PostgreSQL database and returns.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return errSQLiteMigrations
	}

	logger.Info("Executing migrations", slog.String("command", command))

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
