// Package webhook is the outbound adapter that posts board changes to
// configured HTTP targets. It owns the wire payload and maps target
// responses onto domain errors.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// Compile-time check that Client implements ports.WebhookClient.
var _ ports.WebhookClient = (*Client)(nil)

// Doer sends one HTTP request. *httpclient.Client is the production Doer;
// it adds breaker, retry, rate limiting and tracing.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
	HealthCheck(ctx context.Context) error
}

// Headers set on every delivery. HeaderSignature is only present when the
// target has a secret.
const (
	HeaderEvent     = "X-Board-Event"
	HeaderSequence  = "X-Board-Sequence"
	HeaderSignature = "X-Board-Signature"
)

const signaturePrefix = "sha256="

// Client delivers board changes to one target.
type Client struct {
	target config.WebhookTarget
	doer   Doer
	logger *slog.Logger
}

// New creates a client for target sending through doer.
func New(target config.WebhookTarget, doer Doer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{target: target, doer: doer, logger: logger}
}

// Name identifies the target in health reports.
func (c *Client) Name() string {
	return "webhook:" + c.target.Name
}

// HealthCheck reports the target's availability as seen by the doer.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.doer.HealthCheck(ctx)
}

// Deliver posts change as JSON. Any 2xx response is success.
func (c *Client) Deliver(ctx context.Context, change ports.BoardChange) error {
	body, err := json.Marshal(toPayload(change))
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request for %s: %w", c.target.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEvent, EventBoardChanged)
	req.Header.Set(HeaderSequence, fmt.Sprint(change.Sequence))
	if c.target.Secret != "" {
		req.Header.Set(HeaderSignature, Sign(c.target.Secret, body))
	}

	resp, err := c.doer.Do(ctx, req)
	if resp != nil {
		defer c.closeBody(ctx, resp)
	}

	switch {
	case resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp != nil:
		return translateStatus(c.target.Name, resp)
	default:
		return fmt.Errorf("webhook %s: %w: %w", c.target.Name, domain.ErrUnavailable, err)
	}
}

// Sign returns the signature header value for body: "sha256=" followed by
// the hex HMAC-SHA256 of body keyed with secret. Receivers recompute it over
// the raw request body and compare with hmac.Equal.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close webhook response body",
			slog.String("target", c.target.Name),
			slog.Any("error", err),
		)
	}
}
