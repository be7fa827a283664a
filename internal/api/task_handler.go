package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// TaskHandler handles task-related HTTP requests. Every handler expects the
// authentication middleware to have placed the caller identity in the
// request context.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := getIdentityFromContext(r)
	if !ok {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, auth.ErrMissingCredentials, "")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), identity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /tasks requests.
// The new task is owned by the caller regardless of any owner in the body.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, ok := getIdentityFromContext(r)
	if !ok {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, auth.ErrMissingCredentials, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), identity, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("owner", redact.Identity(identity)))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /tasks/{id} requests.
// Only the fields present in the body are changed.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), identity, id, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ToggleTaskCompletion handles PATCH /tasks/{id}/complete requests.
func (h *TaskHandler) ToggleTaskCompletion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleTaskCompletion(r.Context(), identity, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, id, ok := handleIdentityAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), identity, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgTaskDeleted)
}
