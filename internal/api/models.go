package api

import (
	"github.com/phrazzld/todo-api/internal/domain"
)

// CreateTaskRequest is the body of POST /tasks. Fields other than title and
// description are ignored; the owner always comes from the caller identity.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the body of PATCH /tasks/{id}. Each field records
// whether it was present so absent fields keep their stored value.
type UpdateTaskRequest struct {
	Title       domain.Optional[string] `json:"title"`
	Description domain.Optional[string] `json:"description"`
	Completed   domain.Optional[bool]   `json:"completed"`
}

// Patch converts the request into a domain.TaskPatch.
func (req UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
}

// Validate implements the interface checked by shared.ValidateRequest.
func (req UpdateTaskRequest) Validate() error {
	return req.Patch().Validate()
}

// TaskResponse is the JSON representation of a task. Description is
// rendered as null when unset.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Owner       string  `json:"owner"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Owner:       task.Owner,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
