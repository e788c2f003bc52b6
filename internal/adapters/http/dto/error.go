package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

const (
	problemContentType = "application/problem+json"
	internalDetail     = "internal server error"
)

// ErrorResponse represents an RFC 9457 Problem Details response.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single field-level validation error within
// an ErrorResponse.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// NewProblem creates a bare problem detail for status. Used where there is
// no domain error to translate, such as a request timing out.
func NewProblem(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// NewErrorResponse translates a domain error into a problem. Sentinel
// errors choose the status; validation errors list their fields. A rejected
// form submission carries its user-facing alert text as the detail, so API
// clients see the same message the board shows. Errors that match no
// sentinel become a 500 whose detail does not echo the error text.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := domainErrorToStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = internalDetail
	}
	resp := NewProblem(r, status, detail)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = validationFieldsToDetails(verr.Fields)
	}
	return resp
}

// WriteErrorResponse writes the problem for err.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)
	if resp.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("status", resp.Status),
			slog.Any("error", err),
		)
	}
	WriteProblem(w, r, resp)
}

// WriteProblem writes resp as application/problem+json with its status.
func WriteProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", problemContentType)
	w.WriteHeader(resp.Status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "encoding problem response",
			slog.Any("error", err),
		)
	}
}

// domainErrorToStatus maps domain sentinel errors to HTTP status codes.
func domainErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationFieldsToDetails converts validation fields to details sorted by
// location. Plain field names refer to the JSON body; names that already
// carry a location prefix ("path.id") are kept.
func validationFieldsToDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		loc := field
		if !strings.Contains(field, ".") {
			loc = "body." + field
		}
		details = append(details, ErrorDetail{Location: loc, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return strings.Compare(a.Location, b.Location)
	})
	return details
}
