package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	CreateFn               func(ctx context.Context, task *domain.Task) error
	ListByOwnerFn          func(ctx context.Context, owner string) ([]*domain.Task, error)
	UpdateOwnedFn          func(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error)
	ToggleCompletedOwnedFn func(ctx context.Context, owner string, id int64) (*domain.Task, error)
	DeleteOwnedFn          func(ctx context.Context, owner string, id int64) error
	PingFn                 func(ctx context.Context) error

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

// Create implements the TaskStore.Create method
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.DefaultError
}

// ListByOwner implements the TaskStore.ListByOwner method
func (m *MockTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, owner)
	}
	return m.Tasks, m.DefaultError
}

// UpdateOwned implements the TaskStore.UpdateOwned method
func (m *MockTaskStore) UpdateOwned(
	ctx context.Context,
	owner string,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateOwnedFn != nil {
		return m.UpdateOwnedFn(ctx, owner, id, patch)
	}
	return m.Task, m.DefaultError
}

// ToggleCompletedOwned implements the TaskStore.ToggleCompletedOwned method
func (m *MockTaskStore) ToggleCompletedOwned(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	if m.ToggleCompletedOwnedFn != nil {
		return m.ToggleCompletedOwnedFn(ctx, owner, id)
	}
	return m.Task, m.DefaultError
}

// DeleteOwned implements the TaskStore.DeleteOwned method
func (m *MockTaskStore) DeleteOwned(ctx context.Context, owner string, id int64) error {
	if m.DeleteOwnedFn != nil {
		return m.DeleteOwnedFn(ctx, owner, id)
	}
	return m.DefaultError
}

// Ping implements the TaskStore.Ping method
func (m *MockTaskStore) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return m.DefaultError
}
