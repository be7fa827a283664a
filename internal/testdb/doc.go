//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Each test runs inside a transaction that is rolled back when the test
// returns, so tests can share one database and run in parallel:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		s := postgres.NewPostgresTaskStore(tx, nil)
//		...
//	})
//
// Tests are skipped when no database URL is configured.
package testdb
