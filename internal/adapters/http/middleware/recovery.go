package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
)

// Recovery returns middleware that turns a handler panic into a logged stack
// trace and a 500 problem. The panic value never reaches the client. Once
// headers are out, or the connection belongs to a websocket session, only
// the log entry is written. http.ErrAbortHandler passes through so the
// server can abort the response itself.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)

			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
						panic(v)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						slog.String("panic", fmt.Sprint(v)),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Int("status", rw.statusCode),
						slog.Bool("upgraded", rw.statusCode == http.StatusSwitchingProtocols),
					)

					if !rw.headerWritten {
						dto.WriteProblem(rw, r, dto.NewProblem(r, http.StatusInternalServerError, "internal server error"))
					}
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
