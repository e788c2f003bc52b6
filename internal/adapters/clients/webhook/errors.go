package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/project-board/internal/domain"
)

const maxErrorBodySize = 64 << 10

// problemDetail is the subset of an RFC 9457 body a target may send back.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// translateStatus maps a non-2xx target response to a domain error.
// Server-side failures and throttling become domain.ErrUnavailable, payload
// rejections domain.ErrValidation, and a missing endpoint domain.ErrNotFound.
func translateStatus(target string, resp *http.Response) error {
	detail := readProblemDetail(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	msg := fmt.Sprintf("webhook %s: HTTP %d: %s", target, resp.StatusCode, detail)

	switch code := resp.StatusCode; {
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", msg, domain.ErrValidation)
	case code == http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, domain.ErrConflict)
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", msg, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: unexpected status", msg)
	}
}

func readProblemDetail(resp *http.Response) string {
	if resp.Body == nil || !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}
	var pd problemDetail
	if json.Unmarshal(body, &pd) != nil {
		return ""
	}
	if pd.Detail != "" {
		return pd.Detail
	}
	return pd.Title
}
