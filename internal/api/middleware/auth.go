package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// AuthMiddleware resolves the caller identity for protected routes.
type AuthMiddleware struct {
	resolver *auth.Resolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver *auth.Resolver) *AuthMiddleware {
	if resolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("resolver cannot be nil for AuthMiddleware")
	}
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate resolves the identity from the Authorization header and adds
// it to the request context. Requests without a usable identity are rejected
// with 401 before the wrapped handler runs.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, authErrorMessage(err), err)
			return
		}

		ctx := shared.WithIdentity(r.Context(), identity)
		log := logger.FromContext(ctx).With(slog.String("identity", redact.Identity(identity)))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authErrorMessage returns the client message for an identity failure.
func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "Missing Authorization Header"
	case errors.Is(err, auth.ErrMalformedCredentials):
		return "Invalid token format"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	default:
		return "Invalid token"
	}
}

// GetIdentity extracts the caller identity from the request context.
func GetIdentity(r *http.Request) (string, bool) {
	return shared.GetIdentity(r.Context())
}
