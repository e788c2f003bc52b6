package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/project-board/internal/adapters/ws"
	"github.com/jsamuelsen11/project-board/internal/app"
	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
	"github.com/jsamuelsen11/project-board/internal/ui/widgets"
)

const validDescription = "Decking boards, joists and a weekend of work."

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		ReadLimit:    64 << 10,
		WriteTimeout: time.Second,
		PingInterval: 30 * time.Second,
		PongWait:     time.Minute,
	}
}

func newStore() *app.ProjectStore {
	n := 0
	return app.NewProjectStore(nil, nil, app.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}))
}

func newHub(t *testing.T, store *app.ProjectStore, cfg config.SessionConfig, opts ...ws.HubOption) (*ws.Hub, string) {
	t.Helper()
	hub := ws.NewHub(store, cfg, nil, nil, opts...)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = hub.Shutdown(ctx)
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

// dial connects and consumes the initial render.
func dial(t *testing.T, url string) (*websocket.Conn, ws.ServerMessage) {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	first := readUntil(t, conn, func(m ws.ServerMessage) bool { return m.Kind == ws.KindRender })
	return conn, first
}

func send(t *testing.T, conn *websocket.Conn, msg ws.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(ws.ServerMessage) bool) ws.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg ws.ServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func ackFor(event string) func(ws.ServerMessage) bool {
	return func(m ws.ServerMessage) bool { return m.Kind == ws.KindAck && m.Event == event }
}

func renderContaining(s string) func(ws.ServerMessage) bool {
	return func(m ws.ServerMessage) bool { return m.Kind == ws.KindRender && strings.Contains(m.HTML, s) }
}

func submitForm(title, description, people string) ws.ClientMessage {
	return ws.ClientMessage{
		Type:   dom.EventSubmit,
		Target: widgets.InputElementID,
		Form: map[string]string{
			widgets.FieldTitle:       title,
			widgets.FieldDescription: description,
			widgets.FieldPeople:      people,
		},
	}
}

func TestHub_InitialRender(t *testing.T) {
	t.Parallel()

	_, url := newHub(t, newStore(), sessionConfig())
	_, first := dial(t, url)

	assert.Contains(t, first.HTML, `id="user-input"`)
	assert.Contains(t, first.HTML, "ACTIVE PROJECTS")
	assert.Contains(t, first.HTML, "FINISHED PROJECTS")
}

func TestHub_InvalidSubmitAlerts(t *testing.T) {
	t.Parallel()

	store := newStore()
	_, url := newHub(t, store, sessionConfig())
	conn, _ := dial(t, url)

	send(t, conn, submitForm("Deck", "too short", "3"))
	ack := readUntil(t, conn, ackFor(dom.EventSubmit))

	assert.True(t, ack.PreventDefault)
	assert.Equal(t, "Invalid input, please try again!", ack.Alert)
	assert.Empty(t, ack.Error)
	assert.Zero(t, store.Snapshot().Len())
}

func TestHub_ValidSubmitRendersProject(t *testing.T) {
	t.Parallel()

	store := newStore()
	_, url := newHub(t, store, sessionConfig())
	conn, _ := dial(t, url)

	send(t, conn, submitForm("Build a deck", validDescription, "3"))
	ack := readUntil(t, conn, ackFor(dom.EventSubmit))
	assert.Empty(t, ack.Alert)

	render := readUntil(t, conn, renderContaining("Build a deck"))
	assert.Contains(t, render.HTML, "3 persons assigned")
	require.Equal(t, 1, store.Snapshot().Len())
	assert.Equal(t, project.StatusActive, store.Snapshot().At(0).Status)
}

func TestHub_ChangesReachOtherSessions(t *testing.T) {
	t.Parallel()

	_, url := newHub(t, newStore(), sessionConfig())
	connA, _ := dial(t, url)
	connB, _ := dial(t, url)

	send(t, connA, submitForm("Paint fence", validDescription, "1"))

	render := readUntil(t, connB, renderContaining("Paint fence"))
	assert.Contains(t, render.HTML, "One person assigned.")
}

func TestHub_DragWithinSession(t *testing.T) {
	t.Parallel()

	store := newStore()
	p := store.AddProject(context.Background(), "Build a deck", validDescription, 3)
	_, url := newHub(t, store, sessionConfig())
	conn, _ := dial(t, url)

	send(t, conn, ws.ClientMessage{Type: dom.EventDragStart, Target: p.ID})
	start := readUntil(t, conn, ackFor(dom.EventDragStart))
	assert.Equal(t, map[string]string{"text/plain": p.ID}, start.Data)
	assert.Equal(t, "move", start.EffectAllowed)

	target := widgets.ItemsElementID(project.StatusFinished)
	send(t, conn, ws.ClientMessage{Type: dom.EventDragOver, Target: target})
	over := readUntil(t, conn, ackFor(dom.EventDragOver))
	assert.True(t, over.PreventDefault)

	send(t, conn, ws.ClientMessage{Type: dom.EventDrop, Target: target})
	readUntil(t, conn, ackFor(dom.EventDrop))
	send(t, conn, ws.ClientMessage{Type: dom.EventDragEnd, Target: p.ID})
	readUntil(t, conn, ackFor(dom.EventDragEnd))

	got, ok := store.Snapshot().Find(p.ID)
	require.True(t, ok)
	assert.Equal(t, project.StatusFinished, got.Status)
}

func TestHub_DropFromAnotherWindowUsesBrowserPayload(t *testing.T) {
	t.Parallel()

	store := newStore()
	p := store.AddProject(context.Background(), "Build a deck", validDescription, 3)
	_, url := newHub(t, store, sessionConfig())
	conn, _ := dial(t, url)

	send(t, conn, ws.ClientMessage{
		Type:   dom.EventDrop,
		Target: widgets.ListElementID(project.StatusFinished),
		Types:  []string{"text/plain"},
		Data:   map[string]string{"text/plain": p.ID},
	})
	readUntil(t, conn, ackFor(dom.EventDrop))

	got, _ := store.Snapshot().Find(p.ID)
	assert.Equal(t, project.StatusFinished, got.Status)
}

func TestHub_BadMessages(t *testing.T) {
	t.Parallel()

	_, url := newHub(t, newStore(), sessionConfig())
	conn, _ := dial(t, url)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	send(t, conn, ws.ClientMessage{Type: dom.EventDrop, Target: "nowhere"})
	ack := readUntil(t, conn, ackFor(dom.EventDrop))
	assert.Equal(t, "unknown target", ack.Error)

	send(t, conn, ws.ClientMessage{Type: "click", Target: widgets.HostApp})
	ack = readUntil(t, conn, ackFor("click"))
	assert.Equal(t, "unsupported event", ack.Error)
}

func TestHub_SessionEndDetachesListeners(t *testing.T) {
	t.Parallel()

	store := newStore()
	hub, url := newHub(t, store, sessionConfig())
	conn, _ := dial(t, url)

	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, len(project.Statuses), store.ListenerCount())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return hub.Count() == 0 && store.ListenerCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHub_MaxSessions(t *testing.T) {
	t.Parallel()

	cfg := sessionConfig()
	cfg.MaxSessions = 1
	hub, url := newHub(t, newStore(), cfg)
	dial(t, url)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	assert.ErrorIs(t, hub.HealthCheck(context.Background()), ws.ErrHubFull)
	assert.ErrorIs(t, ws.ErrHubFull, domain.ErrUnavailable)
}

func TestHub_BrokenPage(t *testing.T) {
	t.Parallel()

	broken := func() (*dom.Document, error) {
		return dom.ParseString(`<html><body><div id="app"></div></body></html>`)
	}
	store := newStore()
	_, url := newHub(t, store, sessionConfig(), ws.WithDocumentFactory(broken))

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Zero(t, store.ListenerCount())
}

func TestHub_Shutdown(t *testing.T) {
	t.Parallel()

	hub, url := newHub(t, newStore(), sessionConfig())
	conn, _ := dial(t, url)
	require.NoError(t, hub.HealthCheck(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, hub.Shutdown(ctx))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var err error
	for err == nil {
		_, _, err = conn.ReadMessage()
	}
	var closeErr *websocket.CloseError
	require.True(t, errors.As(err, &closeErr), "read error = %v, want close frame", err)
	assert.Equal(t, websocket.CloseGoingAway, closeErr.Code)

	assert.Zero(t, hub.Count())
	assert.ErrorIs(t, hub.HealthCheck(context.Background()), ws.ErrHubClosed)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	if resp != nil {
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	}
}

func TestServerMessage_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ws.ServerMessage{Kind: ws.KindRender, HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"render","html":"<p>x</p>"}`, string(data))
}
