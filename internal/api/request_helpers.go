package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// getIdentityFromContext returns the identity placed in the request context
// by the authentication middleware.
func getIdentityFromContext(r *http.Request) (string, bool) {
	return shared.GetIdentity(r.Context())
}

// getPathID parses a positive integer task ID from the named path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleIdentityAndPathID extracts the caller identity and the task ID.
// It writes the error response and returns false when either is missing.
func handleIdentityAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (string, int64, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	identity, ok := getIdentityFromContext(r)
	if !ok {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, auth.ErrMissingCredentials, "")
		return "", 0, false
	}

	id, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return "", 0, false
	}

	return identity, id, true
}
