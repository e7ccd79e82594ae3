package monitoring

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// TraceIDHeader carries the request trace id in both directions
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// GetTraceIDFromContext returns the trace id stored by TraceIDMiddleware, or ""
func GetTraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey{}).(string); ok {
		return traceID
	}
	return ""
}

// WithTraceID adds the given trace ID to the context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDMiddleware reuses the caller's X-Trace-ID or generates a new UUID,
// stores it in the request context and echoes it in the response header
func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		w.Header().Set(TraceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(WithTraceID(r.Context(), traceID)))
	})
}
