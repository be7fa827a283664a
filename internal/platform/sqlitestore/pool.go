package sqlitestore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DefaultPoolSize is used when Config.PoolSize is not positive.
const DefaultPoolSize = 5

// schema creates the tasks table. It runs on every new connection and is
// idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner TEXT NOT NULL CHECK (owner <> ''),
	title TEXT NOT NULL,
	description TEXT NULL,
	completed INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks (owner);
`

// Config holds the parameters for opening a SQLite connection pool.
type Config struct {
	// Path is the database file. It is created if missing; the parent
	// directory must exist.
	Path string

	// PoolSize is the number of connections. SQLite serializes writers
	// regardless, so a handful is enough.
	PoolSize int

	// BusyTimeout bounds how long a writer waits for the lock.
	// Zero means five seconds.
	BusyTimeout time.Duration

	// Logger receives pool open and close messages. Nil discards them.
	Logger *slog.Logger
}

// Pool is a fixed-size pool of SQLite connections with the tasks schema
// in place. It is safe for concurrent use; connections are not.
type Pool struct {
	inner  *sqlitex.Pool
	logger *slog.Logger
	path   string
}

// Open creates the pool. Connections are initialized lazily on first Take.
func Open(cfg Config) (*Pool, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlitestore: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With(slog.String("component", "sqlite_pool"))

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	busyTimeout := cfg.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	inner, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			return prepareConnection(conn, busyTimeout)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: opening %s: %w", cfg.Path, err)
	}

	logger.Info("sqlite pool opened",
		slog.String("path", cfg.Path),
		slog.Int("pool_size", poolSize))

	return &Pool{
		inner:  inner,
		logger: logger,
		path:   cfg.Path,
	}, nil
}

// Take borrows a connection. It blocks until one is free or ctx is done.
// The caller must Put the connection back.
func (p *Pool) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: take: %w", err)
	}
	return conn, nil
}

// Put returns a connection to the pool. Nil is a no-op.
func (p *Pool) Put(conn *sqlite.Conn) {
	p.inner.Put(conn)
}

// Close closes every connection, waiting for borrowed ones to come back.
func (p *Pool) Close() error {
	if err := p.inner.Close(); err != nil {
		p.logger.Error("sqlite pool close error",
			slog.String("path", p.path),
			slog.String("error", err.Error()))
		return fmt.Errorf("sqlitestore: closing %s: %w", p.path, err)
	}
	p.logger.Info("sqlite pool closed", slog.String("path", p.path))
	return nil
}

func prepareConnection(conn *sqlite.Conn, busyTimeout time.Duration) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlitestore: %s: %w", pragma, err)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("sqlitestore: creating schema: %w", err)
	}
	return nil
}
