package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Every method that targets a single row takes the requesting owner and
// matches on both id and owner in one statement. A row that does not exist
// and a row owned by someone else both yield ErrTaskNotFound.
type TaskStore interface {
	// Create inserts task and sets task.ID to the store-assigned id.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// ListByOwner returns every task owned by owner, in store order.
	// Returns an empty, non-nil slice when the owner has no tasks.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)

	// UpdateOwned applies the supplied fields of patch to the task and
	// returns the updated row.
	UpdateOwned(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// ToggleCompletedOwned negates the completed flag and returns the updated row.
	ToggleCompletedOwned(ctx context.Context, owner string, id int64) (*domain.Task, error)

	// DeleteOwned permanently removes the task.
	DeleteOwned(ctx context.Context, owner string, id int64) error

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error
}
