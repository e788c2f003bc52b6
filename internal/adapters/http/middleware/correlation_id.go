package middleware

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/project-board/internal/platform/httpclient"
)

const (
	headerCorrelationID = "X-Correlation-ID"
	// queryCorrelationID carries the id on websocket upgrades, where the
	// browser cannot set request headers.
	queryCorrelationID = "correlation_id"
)

type correlationIDKey struct{}

// WithCorrelationID stores id in ctx, both for this package and for
// httpclient so outbound calls carry X-Correlation-ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, correlationIDKey{}, id)
	return httpclient.WithCorrelationID(ctx, id)
}

// CorrelationIDFromContext returns the correlation ID, or "" outside a
// request.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// CorrelationID returns middleware that ties a request to a wider flow. The
// first usable value among the X-Correlation-ID header, the correlation_id
// query parameter and the request ID is stored in the context and echoed in
// the response.
//
// It must run after RequestID so the fallback is available.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := RequestIDFromContext(r.Context())
			for _, candidate := range []string{
				r.Header.Get(headerCorrelationID),
				r.URL.Query().Get(queryCorrelationID),
			} {
				if usableTraceID(candidate) {
					id = candidate
					break
				}
			}
			w.Header().Set(headerCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
		})
	}
}
