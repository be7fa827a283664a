package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// ParseAuthorizationHeader extracts the token from an "<scheme> <token>"
// header value. The scheme is not inspected.
func ParseAuthorizationHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissingCredentials
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", ErrMalformedCredentials
	}

	return parts[1], nil
}

// TokenValidator turns a bearer token into the identity that owns tasks.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// OpaqueValidator treats the token itself as the identity. No
// verification is performed; whoever presents a token is its owner.
type OpaqueValidator struct{}

// Validate implements TokenValidator.
func (OpaqueValidator) Validate(_ context.Context, token string) (string, error) {
	// "Bearer " parses to an empty token. It is rejected here rather than
	// returned as the identity, so no caller can own tasks as "".
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

// Resolver derives a caller identity from an Authorization header.
type Resolver struct {
	validator TokenValidator
	logger    *slog.Logger
}

// NewResolver creates a Resolver. A nil validator means OpaqueValidator.
func NewResolver(validator TokenValidator, log *slog.Logger) *Resolver {
	if validator == nil {
		validator = OpaqueValidator{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		validator: validator,
		logger:    log.With(slog.String("component", "identity_resolver")),
	}
}

// Resolve parses header and validates its token. Every error wraps
// ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, header string) (string, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	token, err := ParseAuthorizationHeader(header)
	if err != nil {
		log.Debug("authorization header rejected", slog.String("reason", err.Error()))
		return "", err
	}

	identity, err := r.validator.Validate(ctx, token)
	if err != nil {
		log.Debug("token rejected", slog.String("reason", err.Error()))
		if !errors.Is(err, ErrUnauthenticated) {
			return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
		return "", err
	}

	return identity, nil
}
