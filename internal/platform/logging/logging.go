// Package logging builds the service's slog loggers and carries them through
// context.
//
//	logger := logging.New("info", "json", os.Stderr, slog.String("service", "project-board"))
//	store := app.NewProjectStore(logging.Component(logger, "store"), metrics)
//
// The logging middleware stores a request-scoped child logger in the context;
// code handling a request reads it back with FromContext, and long-lived
// components with their own logger use FromContextOr.
//
// Error logs carry the operation, the entity identifiers and the full chain:
//
//	logger.ErrorContext(ctx, "rendering project item",
//	    slog.String("operation", "ProjectList.Render"),
//	    slog.String("project_id", p.ID),
//	    slog.Any("error", err),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"
)

// Output formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type contextKey struct{}

// New creates a logger writing to w. Levels are parsed like slog.Level's text
// form ("debug", "WARN", "info+2"); anything else means info. FormatText
// selects the text handler and every other format JSON. Debug loggers
// include source locations. attrs are attached to every record.
//
// Sensitive values are redacted before they reach w; see redact_handler.go.
func New(level, format string, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if format == FormatText {
		handler = slog.NewTextHandler(w, opts)
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	return slog.New(handler)
}

// Component returns a child of logger tagged with the component name, used
// to tell the store, the session hub and the notifier apart in one stream.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String("component", name))
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, slog.Default())
}

// FromContextOr returns the logger stored in ctx, or fallback for contexts
// that carry none, such as work started outside a request.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return fallback
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
