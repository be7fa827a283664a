package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/sqlitestore"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// pingTimeout bounds the connectivity check made when a store is opened.
const pingTimeout = 5 * time.Second

// openStore opens the task store selected by cfg.Database.Driver. The
// returned function releases the underlying connections.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.TaskStore, func() error, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return openSQLiteStore(ctx, cfg, logger)
	case config.DriverPostgres:
		return openPostgresStore(ctx, cfg, logger)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func openPostgresStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, logger); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("failed to apply migrations: %w", err), db.Close())
		}
	}

	return postgres.NewPostgresTaskStore(db, logger), db.Close, nil
}

func openSQLiteStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	pool, err := sqlitestore.Open(sqlitestore.Config{
		Path:     cfg.Database.Path,
		PoolSize: cfg.Database.MaxOpenConns,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	taskStore := sqlitestore.NewTaskStore(pool, logger)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := taskStore.Ping(pingCtx); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("failed to ping sqlite database: %w", err), pool.Close())
	}

	logger.Info("Database connection established", slog.String("driver", config.DriverSQLite))
	return taskStore, pool.Close, nil
}

// setupAppDatabase opens the PostgreSQL pool and verifies connectivity.
// Pool limits come from cfg.Database; database/sql checks connections for
// validity before reusing them.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	logger.Info("Database connection established",
		slog.String("driver", config.DriverPostgres),
		slog.Int("max_open_conns", cfg.Database.MaxOpenConns))
	return db, nil
}
