package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

// maxJSONBodyBytes bounds API request bodies. A project is three short
// fields, so 64 KiB is generous.
const maxJSONBodyBytes = 64 << 10

// pathParam returns a non-blank chi URL parameter.
func pathParam(r *http.Request, param string) (string, error) {
	raw := strings.TrimSpace(chi.URLParam(r, param))
	if raw == "" {
		return "", &domain.ValidationError{
			Fields: map[string]string{"path." + param: domain.MsgRequired},
		}
	}
	return raw, nil
}

// writeJSON writes v with the given status. Encoding failures happen after
// the status line is out, so they can only be logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
}

// decodeJSONBody decodes exactly one JSON value from the body into dst,
// rejecting unknown fields, trailing data and bodies over maxJSONBodyBytes.
// On failure it writes a 400 problem and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil && !errors.Is(dec.Decode(&struct{}{}), io.EOF) {
		err = errors.New("trailing data after JSON value")
	}
	if err == nil {
		return true
	}

	msg := "invalid JSON"
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		msg = "body too large"
	}
	dto.WriteErrorResponse(w, r, &domain.ValidationError{
		Fields: map[string]string{"body": msg},
	})
	return false
}

type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the body into dst and runs its Validate. On
// failure it writes the error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
