package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

const taskColumns = "id, owner, title, description, completed"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
	)
	if err := row.Scan(&task.ID, &task.Owner, &task.Title, &description, &task.Completed); err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = &description.String
	}
	return &task, nil
}

// Create implements store.TaskStore.Create
// It inserts the task and sets task.ID from the generated key.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (owner, title, description, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Owner,
		task.Title,
		task.Description,
		task.Completed,
	).Scan(&task.ID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner", redact.Identity(task.Owner)))
		return store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("owner", redact.Identity(task.Owner)))
	return nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner = $1 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner", redact.Identity(owner)))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "scan failed", MapError(err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	log.Debug("listed tasks",
		slog.String("owner", redact.Identity(owner)),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateOwned implements store.TaskStore.UpdateOwned
// Absent fields keep their stored value. A description that is present but
// null clears the column. An empty patch reads the owned row without writing it.
func (s *PostgresTaskStore) UpdateOwned(
	ctx context.Context,
	owner string,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		task, err := scanTask(s.db.QueryRowContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner = $2`, id, owner))
		if err != nil {
			return nil, s.ownedRowError(log, "update", id, err)
		}
		log.Debug("empty patch, task left unchanged", slog.Int64("task_id", id))
		return task, nil
	}

	query := `
		UPDATE tasks
		SET title = COALESCE($3, title),
			description = CASE WHEN $4::boolean THEN $5 ELSE description END,
			completed = COALESCE($6, completed)
		WHERE id = $1 AND owner = $2
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		id,
		owner,
		patch.Title.Ptr(),
		patch.Description.Set,
		patch.Description.Ptr(),
		patch.Completed.Ptr(),
	))
	if err != nil {
		return nil, s.ownedRowError(log, "update", id, err)
	}

	log.Debug("task updated", slog.Int64("task_id", id))
	return task, nil
}

// ToggleCompletedOwned implements store.TaskStore.ToggleCompletedOwned
func (s *PostgresTaskStore) ToggleCompletedOwned(
	ctx context.Context,
	owner string,
	id int64,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1 AND owner = $2
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, owner))
	if err != nil {
		return nil, s.ownedRowError(log, "toggle", id, err)
	}

	log.Debug("task completion toggled",
		slog.Int64("task_id", id),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// DeleteOwned implements store.TaskStore.DeleteOwned
func (s *PostgresTaskStore) DeleteOwned(ctx context.Context, owner string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("no owned task to delete", slog.Int64("task_id", id))
			return err
		}
		return store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ PingContext(context.Context) error }); ok {
		if err := p.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
		return nil
	}

	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}

// ownedRowError converts the error from an owner-scoped RETURNING statement.
func (s *PostgresTaskStore) ownedRowError(log *slog.Logger, op string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no owned task matched",
			slog.String("operation", op),
			slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Error("owner-scoped task statement failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
		slog.Int64("task_id", id))
	return store.NewStoreError("task", op, "statement failed", MapError(err))
}
