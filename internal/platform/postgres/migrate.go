package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the table goose uses to track applied versions.
const MigrationTableName = "schema_migrations"

// migrationsDir is the directory inside migrationsFS holding the SQL files.
const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateReset   = "reset"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// ErrUnknownMigrationCommand is returned by Migrate for unsupported commands.
var ErrUnknownMigrationCommand = errors.New("unknown migration command")

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR. It does not exit; the error is returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against db using the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	migrationLogger := logger.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	startTime := time.Now()
	migrationLogger.Info("starting migration command")

	var err error
	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, db, migrationsDir)
	case MigrateDown:
		err = goose.DownContext(ctx, db, migrationsDir)
	case MigrateReset:
		err = goose.ResetContext(ctx, db, migrationsDir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, migrationsDir)
	case MigrateVersion:
		err = goose.VersionContext(ctx, db, migrationsDir)
	default:
		return fmt.Errorf(
			"%w: %s (expected up, down, reset, status, or version)",
			ErrUnknownMigrationCommand,
			command,
		)
	}

	if err != nil {
		migrationLogger.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("migration command completed",
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// CurrentVersion reports the highest applied migration version.
func CurrentVersion(ctx context.Context, db *sql.DB) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
