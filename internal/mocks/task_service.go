package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	ListTasksFn            func(ctx context.Context, owner string) ([]*domain.Task, error)
	CreateTaskFn           func(ctx context.Context, owner, title string, description *string) (*domain.Task, error)
	UpdateTaskFn           func(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error)
	ToggleTaskCompletionFn func(ctx context.Context, owner string, id int64) (*domain.Task, error)
	DeleteTaskFn           func(ctx context.Context, owner string, id int64) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context, owner string) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, owner)
	}
	return m.Tasks, m.DefaultError
}

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	owner, title string,
	description *string,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, owner, title, description)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	owner string,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, owner, id, patch)
	}
	return m.Task, m.DefaultError
}

// ToggleTaskCompletion implements the TaskService.ToggleTaskCompletion method
func (m *MockTaskService) ToggleTaskCompletion(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	if m.ToggleTaskCompletionFn != nil {
		return m.ToggleTaskCompletionFn(ctx, owner, id)
	}
	return m.Task, m.DefaultError
}

// DeleteTask implements the TaskService.DeleteTask method
func (m *MockTaskService) DeleteTask(ctx context.Context, owner string, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, owner, id)
	}
	return m.DefaultError
}
