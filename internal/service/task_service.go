package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskService provides task operations on behalf of a resolved identity.
type TaskService interface {
	// ListTasks returns every task owned by owner. Never nil.
	ListTasks(ctx context.Context, owner string) ([]*domain.Task, error)

	// CreateTask stores a new incomplete task owned by owner.
	CreateTask(ctx context.Context, owner, title string, description *string) (*domain.Task, error)

	// UpdateTask applies the supplied fields of patch to an owned task.
	UpdateTask(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// ToggleTaskCompletion negates the completed flag of an owned task.
	ToggleTaskCompletion(ctx context.Context, owner string, id int64) (*domain.Task, error)

	// DeleteTask permanently removes an owned task.
	DeleteTask(ctx context.Context, owner string, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// wrapTaskError maps store errors onto service errors. Not-found becomes
// ErrTaskNotFound and validation errors pass through unchanged.
func wrapTaskError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.ListByOwner(ctx, owner)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, wrapTaskError("list_tasks", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// CreateTask implements TaskService.CreateTask
// The owner always comes from the caller's identity, never from request data.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	owner, title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(owner, title, description)
	if err != nil {
		log.Debug("rejected task creation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, wrapTaskError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	owner string,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Debug("rejected task update",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	task, err := s.taskStore.UpdateOwned(ctx, owner, id, patch)
	if err != nil {
		return nil, s.logOwnedFailure(log, "update_task", id, err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return task, nil
}

// ToggleTaskCompletion implements TaskService.ToggleTaskCompletion
func (s *taskServiceImpl) ToggleTaskCompletion(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.ToggleCompletedOwned(ctx, owner, id)
	if err != nil {
		return nil, s.logOwnedFailure(log, "toggle_task", id, err)
	}

	log.Info("task completion toggled",
		slog.Int64("task_id", id),
		slog.Bool("completed", task.Completed))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, owner string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.DeleteOwned(ctx, owner, id); err != nil {
		return s.logOwnedFailure(log, "delete_task", id, err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// logOwnedFailure logs an owner-scoped failure at the right level and wraps it.
func (s *taskServiceImpl) logOwnedFailure(log *slog.Logger, operation string, id int64, err error) error {
	wrapped := wrapTaskError(operation, "owner-scoped operation failed", err)
	if errors.Is(wrapped, ErrTaskNotFound) {
		log.Debug("task not found or not owned",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
		return wrapped
	}

	log.Error("task operation failed",
		slog.String("operation", operation),
		slog.Int64("task_id", id),
		slog.String("error", err.Error()))
	return wrapped
}
