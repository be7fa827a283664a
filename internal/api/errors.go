package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// Client-facing messages.
const (
	MsgTaskNotFound       = "Task not found or unauthorized"
	MsgTaskDeleted        = "Task deleted successfully"
	MsgInvalidRequest     = "Invalid request format"
	MsgInvalidTaskID      = "Invalid task ID"
	MsgTitleRequired      = "Task title is required"
	MsgUnexpected         = "An unexpected error occurred"
	MsgMissingAuthHeader  = "Missing Authorization Header"
	MsgInvalidTokenFormat = "Invalid token format"
	MsgInvalidToken       = "Invalid token"
	MsgTokenExpired       = "Token expired"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized

	// Missing and foreign rows are indistinguishable on purpose.
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return MsgMissingAuthHeader
	case errors.Is(err, auth.ErrMalformedCredentials):
		return MsgInvalidTokenFormat
	case errors.Is(err, auth.ErrExpiredToken):
		return MsgTokenExpired
	case errors.Is(err, auth.ErrUnauthenticated):
		return MsgInvalidToken

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return MsgTaskNotFound

	case errors.Is(err, domain.ErrEmptyTaskTitle):
		return MsgTitleRequired
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidTaskID
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// fallback replaces the generic message for unclassified errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example: "Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if field == "Title" && tag == "required" {
					return MsgTitleRequired
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
