//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/todo-api/internal/ciutil"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout is the default timeout for test database operations.
const TestTimeout = 5 * time.Second

var migrateOnce sync.Once

// GetTestDatabaseURL returns TODO_TEST_DB_URL, falling back to DATABASE_URL.
func GetTestDatabaseURL() string {
	return ciutil.TestDatabaseURL(nil)
}

// GetTestDBWithT opens a connection to the test database and applies the
// embedded migrations once per test binary. Without a database URL the test
// is skipped locally and fails in CI.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		if ciutil.IsCI() {
			t.Fatal("TODO_TEST_DB_URL or DATABASE_URL must be set in CI")
		}
		t.Skip("DATABASE_URL not set, skipping PostgreSQL test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(context.Background(), db, postgres.MigrateUp, nil)
	})
	require.NoError(t, migrateErr, "Failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	// The transaction is bound to this context for its whole life.
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
