package sqlitestore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const taskColumns = "id, owner, title, description, completed"

// TaskStore implements store.TaskStore on a SQLite Pool.
type TaskStore struct {
	pool   *Pool
	logger *slog.Logger
}

// NewTaskStore creates a TaskStore over pool. A nil logger uses slog.Default.
func NewTaskStore(pool *Pool, logger *slog.Logger) *TaskStore {
	if pool == nil {
		panic("pool cannot be nil") // ALLOW-PANIC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		pool:   pool,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

func scanTask(stmt *sqlite.Stmt) *domain.Task {
	task := &domain.Task{
		ID:        stmt.ColumnInt64(0),
		Owner:     stmt.ColumnText(1),
		Title:     stmt.ColumnText(2),
		Completed: stmt.ColumnInt64(4) != 0,
	}
	if !stmt.ColumnIsNull(3) {
		description := stmt.ColumnText(3)
		task.Description = &description
	}
	return task
}

// nullable binds a nil pointer as SQL NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// withConn runs fn on a pooled connection. The statement is interrupted
// when ctx is cancelled.
func (s *TaskStore) withConn(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	defer s.pool.Put(conn)

	conn.SetInterrupt(ctx.Done())
	defer conn.SetInterrupt(nil)

	return fn(conn)
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	err := s.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO tasks (owner, title, description, completed)
			VALUES (?, ?, ?, ?)
			RETURNING id`,
			&sqlitex.ExecOptions{
				Args: []any{task.Owner, task.Title, nullable(task.Description), boolArg(task.Completed)},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					task.ID = stmt.ColumnInt64(0)
					return nil
				},
			})
	})
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
func (s *TaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks := make([]*domain.Task, 0)
	err := s.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT `+taskColumns+` FROM tasks WHERE owner = ? ORDER BY id`,
			&sqlitex.ExecOptions{
				Args: []any{owner},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					tasks = append(tasks, scanTask(stmt))
					return nil
				},
			})
	})
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner", redact.Identity(owner)))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}

	log.Debug("listed tasks",
		slog.String("owner", redact.Identity(owner)),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// UpdateOwned implements store.TaskStore.UpdateOwned
// An empty patch reads the owned row without writing it.
func (s *TaskStore) UpdateOwned(
	ctx context.Context,
	owner string,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return s.returningOwned(ctx, "update",
			`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND owner = ?`,
			id,
			id,
			owner,
		)
	}

	var completed any
	if c, ok := patch.Completed.Get(); ok {
		completed = boolArg(c)
	}

	return s.returningOwned(ctx, "update",
		`UPDATE tasks
		SET title = COALESCE(?, title),
			description = CASE WHEN ? THEN ? ELSE description END,
			completed = COALESCE(?, completed)
		WHERE id = ? AND owner = ?
		RETURNING `+taskColumns,
		id,
		nullable(patch.Title.Ptr()),
		boolArg(patch.Description.Set),
		nullable(patch.Description.Ptr()),
		completed,
		id,
		owner,
	)
}

// ToggleCompletedOwned implements store.TaskStore.ToggleCompletedOwned
func (s *TaskStore) ToggleCompletedOwned(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	return s.returningOwned(ctx, "toggle",
		`UPDATE tasks
		SET completed = NOT completed
		WHERE id = ? AND owner = ?
		RETURNING `+taskColumns,
		id,
		id,
		owner,
	)
}

// returningOwned executes an owner-scoped statement that yields at most one
// task row. No returned row means the task is missing or owned by someone else.
func (s *TaskStore) returningOwned(
	ctx context.Context,
	op string,
	query string,
	id int64,
	args ...any,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := s.withConn(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				task = scanTask(stmt)
				return nil
			},
		})
	})
	if err != nil {
		log.Error("owner-scoped task statement failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", op, "statement failed", MapError(err))
	}
	if task == nil {
		log.Debug("no owned task matched",
			slog.String("operation", op),
			slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}

	log.Debug("task updated",
		slog.String("operation", op),
		slog.Int64("task_id", id))
	return task, nil
}

// DeleteOwned implements store.TaskStore.DeleteOwned
func (s *TaskStore) DeleteOwned(ctx context.Context, owner string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var changes int
	err := s.withConn(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM tasks WHERE id = ? AND owner = ?`, &sqlitex.ExecOptions{
			Args: []any{id, owner},
		})
		changes = conn.Changes()
		return err
	})
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}
	if changes == 0 {
		log.Debug("no owned task to delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping
func (s *TaskStore) Ping(ctx context.Context) error {
	return s.withConn(ctx, func(conn *sqlite.Conn) error {
		if err := sqlitex.ExecuteTransient(conn, "SELECT 1", nil); err != nil {
			return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
		}
		return nil
	})
}
