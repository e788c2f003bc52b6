package httpclient

import (
	"context"
	"net/http"
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// Header names propagated to peers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// WithRequestID stores the inbound request id for outbound calls made with
// ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// WithCorrelationID stores the correlation id for outbound calls made with
// ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

func injectMetadata(ctx context.Context, h http.Header) {
	if id, _ := ctx.Value(requestIDKey{}).(string); id != "" {
		h.Set(HeaderRequestID, id)
	}
	if id, _ := ctx.Value(correlationIDKey{}).(string); id != "" {
		h.Set(HeaderCorrelationID, id)
	}
}
