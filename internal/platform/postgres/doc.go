// Package postgres provides the PostgreSQL implementation of store.TaskStore
// together with the embedded goose migrations that create its schema.
//
// Every statement that targets a single task matches on both id and owner,
// so ownership is enforced by the database in the same statement that reads
// or writes the row. Driver errors are classified with MapError.
package postgres
