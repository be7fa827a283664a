package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped values set by the API middleware.
type ContextKey string

const (
	// IdentityContextKey holds the resolved caller identity.
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey holds the per-request trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the length of a generated trace ID in hex characters.
	TraceIDLength = 32
)

// SetTraceID returns a copy of ctx carrying a freshly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a random UUID rendered as 32 hex characters.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// WithIdentity returns a copy of ctx carrying the caller identity.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// GetIdentity returns the caller identity placed in ctx by the auth
// middleware. The boolean is false when no non-empty identity is present.
func GetIdentity(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(string)
	if !ok || identity == "" {
		return "", false
	}
	return identity, true
}
