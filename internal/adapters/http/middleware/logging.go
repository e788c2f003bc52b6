package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

// Logging returns middleware that logs request start and completion events.
// It creates a child logger carrying the request and correlation IDs, stores
// it via logging.WithLogger for downstream use, and logs completion with the
// matched route, status and duration. Server errors log at error level and
// client errors at warn. A websocket upgrade completes when its session
// ends, so that line reads "session closed".
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, child)

			child.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			if child.Enabled(ctx, slog.LevelDebug) {
				headerAttrs := RedactHeaders(r.Header)
				args := make([]any, 0, len(headerAttrs))
				for _, a := range headerAttrs {
					args = append(args, a)
				}
				child.DebugContext(ctx, "request headers", args...)
			}

			rw := newResponseWriter(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(rw, r)

			logCompletion(ctx, child, r, rw.statusCode, time.Since(start))
		})
	}
}

func logCompletion(ctx context.Context, logger *slog.Logger, r *http.Request, status int, elapsed time.Duration) {
	msg := "request completed"
	level := slog.LevelInfo
	switch {
	case status == http.StatusSwitchingProtocols:
		msg = "session closed"
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, msg,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("route", routePattern(r)),
		slog.Int("status", status),
		slog.Duration("duration", elapsed),
	)
}
