package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing header", auth.ErrMissingCredentials, http.StatusUnauthorized, MsgMissingAuthHeader},
		{"malformed header", auth.ErrMalformedCredentials, http.StatusUnauthorized, MsgInvalidTokenFormat},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgTokenExpired},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, MsgInvalidToken},
		{"not yet valid token", auth.ErrTokenNotYetValid, http.StatusUnauthorized, MsgInvalidToken},
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound, MsgTaskNotFound},
		{
			"wrapped store not found",
			fmt.Errorf("update: %w", store.ErrTaskNotFound),
			http.StatusNotFound,
			MsgTaskNotFound,
		},
		{"empty title", domain.ErrEmptyTaskTitle, http.StatusBadRequest, MsgTitleRequired},
		{
			"invalid id",
			domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID),
			http.StatusBadRequest,
			MsgInvalidTaskID,
		},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid task data"},
		{"store unavailable", store.ErrUnavailable, http.StatusInternalServerError, MsgUnexpected},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, MsgUnexpected},
		{"nil", nil, http.StatusInternalServerError, MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("fallback replaces generic server message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)

		HandleAPIError(rr, req, errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Failed to list tasks")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to list tasks"}`, rr.Body.String())
	})

	t.Run("fallback ignored for classified errors", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/tasks/1", nil)

		HandleAPIError(rr, req, service.ErrTaskNotFound, "Failed to delete task")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Task not found or unauthorized"}`, rr.Body.String())
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	type sample struct {
		Name string `validate:"max=3"`
	}

	assert.Equal(t, MsgTitleRequired, SanitizeValidationError(v.Struct(&CreateTaskRequest{})))
	assert.Equal(t, "Invalid Name: too long", SanitizeValidationError(v.Struct(&sample{Name: "abcd"})))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
