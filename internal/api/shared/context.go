// Package shared holds the request-scoped helpers used by the API handlers
// and middleware: trace IDs, JSON decoding and validation, and the standard
// success and error responses.
package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context.
const TraceIDKey ContextKey = "traceID"

// SetTraceID adds a new trace ID to the context. An incoming ID (for example
// from an X-Request-ID header) is reused when it is a plausible identifier.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context, incoming string) context.Context {
	traceID := sanitizeTraceID(incoming)
	if traceID == "" {
		traceID = NewTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
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

// NewTraceID returns a random 32-character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// sanitizeTraceID accepts short IDs made of letters, digits, and the separators chi's RequestID uses.
func sanitizeTraceID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > 64 {
		return ""
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.', r == '/':
		default:
			return ""
		}
	}
	return id
}
