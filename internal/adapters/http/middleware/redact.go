package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders converts an http.Header map into slog.Attr values sorted by
// header name. Headers listed in logging.SensitiveHeaders are replaced with
// "[REDACTED]". Multi-value headers are joined with a comma.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := slices.Sorted(maps.Keys(headers))

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		if logging.SensitiveHeaders[strings.ToLower(key)] {
			attrs = append(attrs, slog.String(key, redacted))
			continue
		}
		attrs = append(attrs, slog.String(key, strings.Join(headers[key], ",")))
	}
	return attrs
}
