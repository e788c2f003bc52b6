package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Session.validate(),
		c.Webhook.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}
	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (s *SessionConfig) validate() error {
	var errs []error

	if s.ReadLimit <= 0 {
		errs = append(errs, fmt.Errorf("session.read_limit must be positive, got %d", s.ReadLimit))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("session.write_timeout must be positive"))
	}
	if s.PingInterval <= 0 {
		errs = append(errs, errors.New("session.ping_interval must be positive"))
	}
	if s.PongWait <= s.PingInterval {
		errs = append(errs, fmt.Errorf("session.pong_wait (%s) must exceed session.ping_interval (%s)",
			s.PongWait, s.PingInterval))
	}
	if s.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("session.max_sessions must be >= 1, got %d", s.MaxSessions))
	}

	return errors.Join(errs...)
}

func (w *WebhookConfig) validate() error {
	if !w.Enabled {
		return nil
	}

	var errs []error

	if w.Workers < 1 {
		errs = append(errs, fmt.Errorf("webhook.workers must be >= 1, got %d", w.Workers))
	}
	if w.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("webhook.queue_size must be >= 1, got %d", w.QueueSize))
	}
	if len(w.Targets) == 0 {
		errs = append(errs, errors.New("webhook.targets must not be empty when webhooks are enabled"))
	}

	seen := make(map[string]bool, len(w.Targets))
	for i, t := range w.Targets {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("webhook.targets[%d].name must not be empty", i))
		} else if seen[t.Name] {
			errs = append(errs, fmt.Errorf("webhook.targets[%d].name %q is a duplicate", i, t.Name))
		}
		seen[t.Name] = true

		if u, err := url.Parse(t.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("webhook.targets[%d].url must be an absolute http(s) URL, got %q", i, t.URL))
		}
	}

	errs = append(errs, w.Client.validate())
	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("webhook.client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("webhook.client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("webhook.client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("webhook.client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("webhook.client.rate_limit.requests_per_second must not be negative, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("webhook.client.rate_limit.burst_size must be >= 1, got %d",
			cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}
