package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
	"github.com/jsamuelsen11/project-board/internal/ui/page"
	"github.com/jsamuelsen11/project-board/internal/ui/widgets"
)

// PageHandler serves the board page: a freshly built board rendered inside
// the page shell. The live session opened by the page script takes over
// from there.
type PageHandler struct {
	store       ports.ProjectStore
	props       page.Props
	newDocument func() (*dom.Document, error)
}

// NewPageHandler creates a PageHandler. props.App is filled per request.
func NewPageHandler(store ports.ProjectStore, props page.Props) *PageHandler {
	return &PageHandler{store: store, props: props, newDocument: page.NewDocument}
}

// WithDocumentFactory replaces the embedded page markup.
func (h *PageHandler) WithDocumentFactory(fn func() (*dom.Document, error)) *PageHandler {
	h.newDocument = fn
	return h
}

// Board handles GET /.
func (h *PageHandler) Board(w http.ResponseWriter, r *http.Request) {
	app, err := h.render(r)
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "rendering board page",
			slog.String("operation", "PageHandler.Board"),
			slog.Any("error", err),
		)
		dto.WriteErrorResponse(w, r, err)
		return
	}

	props := h.props
	props.App = app
	templ.Handler(page.Shell(props)).ServeHTTP(w, r)
}

func (h *PageHandler) render(r *http.Request) (string, error) {
	doc, err := h.newDocument()
	if err != nil {
		return "", err
	}
	board, err := widgets.NewBoard(doc, snapshotStore{h.store}, logging.FromContext(r.Context()))
	if err != nil {
		return "", err
	}
	defer board.Close()

	html, err := board.OuterHTML()
	if err != nil {
		return "", fmt.Errorf("rendering board: %w", err)
	}
	return html, nil
}

// snapshotStore is the store as seen by a one-shot page render: the board
// reads the current snapshot but never subscribes, so mutations on other
// goroutines cannot reach this request's document.
type snapshotStore struct {
	ports.ProjectStore
}

func (snapshotStore) AddListener(ports.Listener) func() {
	return func() {}
}
