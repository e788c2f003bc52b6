// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/project-board/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/project-board/internal/ui/page"
)

// Route paths shared with the page shell.
const (
	LivePath     = "/ws"
	StaticPrefix = "/static"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. requestTimeout bounds
// the page and API routes only; the live endpoint holds its connection for
// the whole session. A zero requestTimeout disables the bound.
func NewRouter(
	pageHandler *handlers.PageHandler,
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
	live http.Handler,
	requestTimeout time.Duration,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Browser assets.
	r.Handle(StaticPrefix+"/*", http.StripPrefix(StaticPrefix+"/", http.FileServerFS(page.Static())))

	// Live board sessions.
	r.Get(LivePath, live.ServeHTTP)

	r.Group(func(r chi.Router) {
		if requestTimeout > 0 {
			r.Use(middleware.Timeout(requestTimeout))
		}

		r.Get("/", pageHandler.Board)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/projects", projectHandler.ListProjects)
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects/{id}", projectHandler.GetProject)
			r.Patch("/projects/{id}/status", projectHandler.MoveProject)
		})
	})

	return r
}
