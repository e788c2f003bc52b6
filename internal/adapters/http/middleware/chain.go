package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/project-board/internal/platform/telemetry"
)

// Chain composes multiple middleware into a single middleware. The first
// argument becomes the outermost middleware (executed first on request,
// last on response):
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is equivalent to:
//
//	Recovery(RequestID(Logging(handler)))
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Standard returns the global middleware stack in serving order. Recovery is
// outermost so it also catches panics from the other layers. IDs are assigned
// before the span starts so that Logging sees both. metrics may be nil.
func Standard(logger *slog.Logger, metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return Chain(
		Recovery(logger),
		RequestID(),
		CorrelationID(),
		OpenTelemetry(metrics),
		Logging(logger),
	)
}
