package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

// jitter spreads each delay by up to this fraction either way.
const jitter = 0.25

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	ceiling    time.Duration
	multiplier float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		attempts:   cfg.MaxAttempts,
		initial:    cfg.InitialInterval,
		ceiling:    cfg.MaxInterval,
		multiplier: cfg.Multiplier,
	}
}

// delay returns the wait before retry n, where n = 1 is the first retry.
func (p retryPolicy) delay(n int) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	if p.ceiling > 0 && d > float64(p.ceiling) {
		d = float64(p.ceiling)
	}
	d += d * jitter * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

// send performs up to p.attempts tries. The last retryable response is
// returned together with an error so the caller can inspect it.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.policy.attempts < 1 {
		return nil, fmt.Errorf("httpclient: max attempts must be >= 1, got %d", c.policy.attempts)
	}
	if err := makeReplayable(req); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := range c.policy.attempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, lastErr); err != nil {
				return nil, err
			}
			if err := rewind(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if !retryableErr(err) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.peer)
		if attempt == c.policy.attempts-1 {
			return resp, lastErr
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
	return nil, lastErr
}

func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, cause error) error {
	d := c.policy.delay(attempt)
	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.peer),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.policy.attempts),
		slog.Duration("backoff", d),
		slog.Any("error", cause),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// makeReplayable makes sure req.GetBody can produce the body again.
func makeReplayable(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}
	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	req.ContentLength = int64(len(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.Body, _ = req.GetBody()
	return nil
}

func rewind(req *http.Request) error {
	if req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

// retryableErr treats everything except caller cancellation as transient.
func retryableErr(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableStatus covers 429 and every 5xx.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
