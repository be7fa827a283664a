package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// MsgAuthRouteReached is returned by every /auth route.
const MsgAuthRouteReached = "Auth route reached"

// AuthHandler serves the /auth routes. Tokens are issued by an external
// provider, so these routes only acknowledge the request.
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Placeholder handles GET and POST /auth/* requests.
func (h *AuthHandler) Placeholder(w http.ResponseWriter, r *http.Request) {
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("auth route reached",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	shared.RespondWithMessage(w, r, http.StatusOK, MsgAuthRouteReached)
}
