// Package ws is the live session transport. Each websocket connection gets
// its own board, driven by the DOM events the browser forwards and
// re-rendered to the browser whenever its markup changes.
package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
	"github.com/jsamuelsen11/project-board/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
	"github.com/jsamuelsen11/project-board/internal/ui/page"
	"github.com/jsamuelsen11/project-board/internal/ui/widgets"
)

// Compile-time check that Hub implements ports.HealthChecker.
var _ ports.HealthChecker = (*Hub)(nil)

var (
	// ErrHubClosed is reported by HealthCheck once Shutdown has started.
	ErrHubClosed = fmt.Errorf("session hub is shutting down: %w", domain.ErrUnavailable)
	// ErrHubFull is reported by HealthCheck while no session can be opened.
	ErrHubFull = fmt.Errorf("session hub is at capacity: %w", domain.ErrUnavailable)

	// errSessionBoard is what the browser sees when its board cannot be
	// built. The cause is logged, not returned.
	errSessionBoard = errors.New("board unavailable")
)

// Hub accepts websocket connections and owns the live sessions.
type Hub struct {
	store       ports.ProjectStore
	cfg         config.SessionConfig
	metrics     *telemetry.Metrics
	logger      *slog.Logger
	upgrader    websocket.Upgrader
	newDocument func() (*dom.Document, error)

	mu       sync.Mutex
	sessions map[string]*session
	closing  bool
	wg       sync.WaitGroup
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithDocumentFactory replaces the embedded page as the source of each
// session's document.
func WithDocumentFactory(fn func() (*dom.Document, error)) HubOption {
	return func(h *Hub) { h.newDocument = fn }
}

// NewHub creates a hub whose sessions render from store. Nil metrics skip
// instrumentation and a nil logger discards output.
func NewHub(store ports.ProjectStore, cfg config.SessionConfig, metrics *telemetry.Metrics, logger *slog.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Hub{
		store:       store,
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
		newDocument: page.NewDocument,
		sessions:    make(map[string]*session),
		upgrader: websocket.Upgrader{
			HandshakeTimeout: cfg.WriteTimeout,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request and runs the session until it ends. The
// board is built before the upgrade so a broken page answers 500.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContextOr(ctx, h.logger)

	if err := h.admit(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	l := newLoop()
	doc, err := h.newDocument()
	if err == nil {
		var board *widgets.Board
		board, err = widgets.NewBoard(doc, loopStore{ProjectStore: h.store, loop: l}, logger)
		if err == nil {
			h.run(w, r, board, l, logger)
			return
		}
	}
	logger.ErrorContext(ctx, "building session board",
		slog.String("operation", "Hub.ServeHTTP"),
		slog.Any("error", err),
	)
	dto.WriteErrorResponse(w, r, errSessionBoard)
}

func (h *Hub) run(w http.ResponseWriter, r *http.Request, board *widgets.Board, l *loop, logger *slog.Logger) {
	defer board.Close()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		board:  board,
		loop:   l,
		cfg:    h.cfg,
		logger: logger,
		cancel: cancel,
	}
	if !h.register(ctx, s) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "server busy"),
			deadline(h.cfg.WriteTimeout))
		_ = conn.Close()
		return
	}
	defer h.unregister(ctx, s)

	logger.InfoContext(ctx, "session opened", slog.String("session_id", s.id))
	s.serve(ctx)
	logger.InfoContext(ctx, "session ended", slog.String("session_id", s.id))
}

// admit is the cheap pre-upgrade check; register re-checks under the lock.
func (h *Hub) admit() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.admitLocked()
}

func (h *Hub) admitLocked() error {
	if h.closing {
		return ErrHubClosed
	}
	if h.cfg.MaxSessions > 0 && len(h.sessions) >= h.cfg.MaxSessions {
		return ErrHubFull
	}
	return nil
}

func (h *Hub) register(ctx context.Context, s *session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.admitLocked() != nil {
		return false
	}
	h.sessions[s.id] = s
	h.wg.Add(1)
	if h.metrics != nil {
		h.metrics.LiveSessions.Add(ctx, 1)
	}
	return true
}

func (h *Hub) unregister(ctx context.Context, s *session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.LiveSessions.Add(context.WithoutCancel(ctx), -1)
	}
	h.wg.Done()
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Name identifies the hub in readiness reports.
func (h *Hub) Name() string {
	return "sessions"
}

// HealthCheck fails while the hub refuses new sessions.
func (h *Hub) HealthCheck(context.Context) error {
	if err := h.admit(); err != nil {
		return fmt.Errorf("%s: %w", h.Name(), err)
	}
	return nil
}

// Shutdown stops accepting sessions, asks every browser to go away and
// waits for the sessions to end or ctx to expire.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	h.closing = true
	open := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		open = append(open, s)
	}
	h.mu.Unlock()

	closeBy := deadline(h.cfg.WriteTimeout)
	for _, s := range open {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), closeBy)
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		h.logger.InfoContext(ctx, "session hub stopped", slog.Int("sessions", len(open)))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for sessions: %w", ctx.Err())
	}
}
