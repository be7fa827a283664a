package domain

import (
	"fmt"
	"strings"
)

// Validation errors for Task
var (
	ErrEmptyTaskOwner = fmt.Errorf("%w: task owner cannot be empty", ErrValidation)
	ErrEmptyTaskTitle = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
)

// Task is a single to-do item owned by one identity.
//
// Owner is stamped at creation time from the caller's resolved identity and
// never changes afterwards. ID is assigned by the store.
type Task struct {
	ID          int64   `json:"id"`
	Owner       string  `json:"owner"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// NewTask creates an unsaved Task for owner. The task starts incomplete and
// has no ID until a store assigns one.
func NewTask(owner, title string, description *string) (*Task, error) {
	task := &Task{
		Owner:       owner,
		Title:       title,
		Description: description,
		Completed:   false,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Owner) == "" {
		return ErrEmptyTaskOwner
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	return nil
}
