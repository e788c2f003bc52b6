// Package httpclient is the instrumented outbound HTTP client. A Client is
// bound to one peer and wraps every call, outermost first, in a circuit
// breaker, an optional rate limiter, metadata header propagation, a client
// span and a retry loop with jittered exponential backoff.
//
//	client := httpclient.New(cfg.Webhook.Client, "board-audit", metrics, logger)
//	resp, err := client.Do(ctx, req)
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/project-board/internal/platform/config"
	"github.com/jsamuelsen11/project-board/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/project-board/internal/platform/httpclient"

// Client sends requests to a single peer.
type Client struct {
	http    *http.Client
	peer    string
	breaker *gobreaker.CircuitBreaker[*http.Response]
	limiter *rate.Limiter
	policy  retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a Client for peer. The peer name labels spans, metrics, logs
// and the breaker. Nil metrics skip instrumentation and a nil logger
// discards output.
func New(cfg config.ClientConfig, peer string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		peer:    peer,
		policy:  newRetryPolicy(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}

	maxFailures := cfg.CircuitBreaker.MaxFailures
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        peer,
		MaxRequests: clampUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), max(rl.BurstSize, 1))
	}
	return c
}

// Do sends req through the breaker, limiter, span and retry loop.
//
// A non-retryable response comes back with a nil error and an open body the
// caller must close. When retries run out on a retryable status, both the
// last response (body open) and an error are returned. Breaker rejections,
// rate limiter cancellation and transport errors return a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("waiting for rate limiter: %w", err)
			}
		}

		ctx, span := c.startSpan(ctx, req)
		defer span.End()

		var err error
		resp, err = c.send(ctx, req.WithContext(ctx))
		endSpan(span, resp, err)
		return resp, err
	})

	c.record(ctx, req.Method, start, resp, err)
	return resp, err
}

// Name identifies the peer. With HealthCheck it satisfies
// ports.HealthChecker.
func (c *Client) Name() string {
	return c.peer
}

// HealthCheck reports the breaker state without touching the network:
// closed is healthy, half-open is degraded and open is failing.
func (c *Client) HealthCheck(context.Context) error {
	switch state := c.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.peer)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.peer)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.peer, state)
	}
}

// IsCircuitOpen reports whether err is a breaker rejection.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx,
		"HTTP "+req.Method+" "+c.peer,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.peer),
		),
	)
	injectMetadata(ctx, req.Header)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

func endSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// record runs outside the breaker so rejections are counted too.
func (c *Client) record(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	status, result := 0, "error"
	if resp != nil {
		status = resp.StatusCode
		if status < http.StatusBadRequest {
			result = "success"
		}
	}
	if IsCircuitOpen(err) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrPeerService.String(c.peer),
		telemetry.AttrResult.String(result),
	)
	c.metrics.ClientRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

func clampUint32(v int) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	default:
		return uint32(v)
	}
}
