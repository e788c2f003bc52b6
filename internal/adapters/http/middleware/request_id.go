package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/project-board/internal/platform/httpclient"
)

const (
	headerRequestID = "X-Request-ID"
	maxTraceIDLen   = 128
)

type requestIDKey struct{}

// WithRequestID stores id in ctx, both for this package and for httpclient
// so outbound calls made while serving the request send it along.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return httpclient.WithRequestID(ctx, id)
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID returns middleware that assigns each request an ID. A usable
// incoming X-Request-ID is kept; otherwise a UUID v4 is generated. The ID is
// echoed in the response before the handler runs.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if !usableTraceID(id) {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

// usableTraceID reports whether a client-supplied request or correlation ID
// can be logged and echoed as is: non-empty, bounded, printable ASCII with
// no spaces.
func usableTraceID(id string) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}
	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
