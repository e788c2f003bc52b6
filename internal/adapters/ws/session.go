package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
	"github.com/jsamuelsen11/project-board/internal/ui/widgets"
)

// session is one live browser connection and the board it drives. Every
// board access happens on the loop goroutine.
type session struct {
	id     string
	conn   *websocket.Conn
	board  *widgets.Board
	loop   *loop
	cfg    config.SessionConfig
	logger *slog.Logger
	cancel context.CancelFunc

	// drag is the payload of the drag gesture started in this session, if any.
	drag     *dom.DataTransfer
	lastHTML string
}

// serve runs the session until the connection drops or ctx ends.
func (s *session) serve(ctx context.Context) {
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer s.cancel()
		s.read(ctx)
	}()
	go s.ping(ctx)

	// Initial sync: the page may predate this session's board.
	s.loop.post(func() {})
	s.loop.run(ctx, func() { s.flush(ctx) })

	_ = s.conn.Close()
	<-readerDone
}

func (s *session) read(ctx context.Context) {
	s.conn.SetReadLimit(s.cfg.ReadLimit)
	_ = s.conn.SetReadDeadline(deadline(s.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(deadline(s.cfg.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logClosed(ctx, err)
			return
		}
		_ = s.conn.SetReadDeadline(deadline(s.cfg.PongWait))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.WarnContext(ctx, "ignoring malformed session message",
				slog.String("session_id", s.id),
				slog.Any("error", err),
			)
			continue
		}
		s.loop.post(func() { s.handle(ctx, msg) })
	}
}

func (s *session) ping(ctx context.Context) {
	if s.cfg.PingInterval <= 0 {
		return
	}
	t := time.NewTicker(s.cfg.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline(s.cfg.WriteTimeout)); err != nil {
				s.cancel()
				return
			}
		}
	}
}

// handle dispatches one browser event to the board and acknowledges it.
func (s *session) handle(ctx context.Context, msg ClientMessage) {
	ev := &dom.Event{Ctx: ctx, Type: msg.Type, TargetID: msg.Target, Form: msg.Form}

	switch msg.Type {
	case dom.EventSubmit:
	case dom.EventDragStart:
		s.drag = dom.NewDataTransfer()
		ev.DataTransfer = s.drag
	case dom.EventDragOver, dom.EventDragLeave, dom.EventDrop:
		ev.DataTransfer = s.payload(msg)
	case dom.EventDragEnd:
		ev.DataTransfer = s.payload(msg)
		defer func() { s.drag = nil }()
	default:
		s.send(ctx, ServerMessage{Kind: KindAck, Event: msg.Type, Error: "unsupported event"})
		return
	}

	ack := ServerMessage{Kind: KindAck, Event: msg.Type}
	if err := s.board.Dispatch(ev); err != nil {
		s.logger.WarnContext(ctx, "session event failed",
			slog.String("operation", "session.handle"),
			slog.String("session_id", s.id),
			slog.String("event", msg.Type),
			slog.String("target", msg.Target),
			slog.Any("error", err),
		)
		ack.Error = eventError(err)
	}
	ack.PreventDefault = ev.DefaultPrevented()
	ack.Alert = strings.Join(ev.Alerts(), "\n")
	if msg.Type == dom.EventDragStart {
		ack.Data = ev.DataTransfer.Data()
		ack.EffectAllowed = ev.DataTransfer.EffectAllowed
		if ack.Error != "" {
			s.drag = nil
		}
	}
	s.send(ctx, ack)
}

// payload prefers the drag started in this session over what the browser
// reported, which only matters for drags coming from another window.
func (s *session) payload(msg ClientMessage) *dom.DataTransfer {
	if s.drag != nil {
		return s.drag
	}
	return dom.RestoreDataTransfer(msg.Types, msg.Data)
}

// flush pushes the app markup when it changed since the last push.
func (s *session) flush(ctx context.Context) {
	html, err := s.board.AppHTML()
	if err != nil {
		s.logger.ErrorContext(ctx, "rendering board",
			slog.String("operation", "session.flush"),
			slog.String("session_id", s.id),
			slog.Any("error", err),
		)
		return
	}
	if html == s.lastHTML {
		return
	}
	if s.send(ctx, ServerMessage{Kind: KindRender, HTML: html}) {
		s.lastHTML = html
	}
}

func (s *session) send(ctx context.Context, msg ServerMessage) bool {
	_ = s.conn.SetWriteDeadline(deadline(s.cfg.WriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.DebugContext(ctx, "session write failed",
			slog.String("session_id", s.id),
			slog.String("kind", msg.Kind),
			slog.Any("error", err),
		)
		s.cancel()
		return false
	}
	return true
}

func (s *session) logClosed(ctx context.Context, err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
		s.logger.WarnContext(ctx, "session closed unexpectedly",
			slog.String("session_id", s.id),
			slog.Any("error", err),
		)
		return
	}
	s.logger.DebugContext(ctx, "session closed", slog.String("session_id", s.id))
}

func eventError(err error) string {
	if errors.Is(err, dom.ErrElementNotFound) {
		return "unknown target"
	}
	return fmt.Sprintf("event failed: %v", err)
}

// deadline returns now+d, or the zero time (no deadline) when d is not positive.
func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d)
}
