// Package correlation provides request correlation ID handling.
package correlation

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const correlationIDKey contextKey = "correlation_id"

// HeaderName is the HTTP header carrying correlation IDs, inbound and towards
// the cost service.
const HeaderName = "X-Correlation-ID"

// Middleware reuses the caller's correlation ID or mints one, stores it in
// the request context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(HeaderName, id)
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}

// GetID retrieves the correlation ID from context.
func GetID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithID adds a correlation ID to the context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// Logger returns logger annotated with the context's correlation ID, if any.
func Logger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := GetID(ctx); id != "" {
		return logger.With("correlation_id", id)
	}
	return logger
}
