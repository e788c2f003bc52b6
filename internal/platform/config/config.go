// Package config loads the board service configuration. Values are layered:
// built-in defaults, then configs/base.yaml, then configs/{profile}.yaml,
// then APP_ prefixed environment variables.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Session   SessionConfig   `koanf:"session"`
	Webhook   WebhookConfig   `koanf:"webhook"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	// RequestTimeout bounds page and API handlers. Websocket sessions are
	// long-lived and not subject to it.
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// SessionConfig holds settings for live board sessions.
type SessionConfig struct {
	// ReadLimit caps the size of one browser event message in bytes.
	ReadLimit    int64         `koanf:"read_limit"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	PingInterval time.Duration `koanf:"ping_interval"`
	// PongWait is how long a session waits for any message, pongs included,
	// before it is considered dead. Must exceed PingInterval.
	PongWait    time.Duration `koanf:"pong_wait"`
	MaxSessions int           `koanf:"max_sessions"`
}

// WebhookConfig holds the outbound change notification settings.
type WebhookConfig struct {
	Enabled   bool            `koanf:"enabled"`
	Workers   int             `koanf:"workers"`
	QueueSize int             `koanf:"queue_size"`
	Targets   []WebhookTarget `koanf:"targets"`
	Client    ClientConfig    `koanf:"client"`
}

// WebhookTarget is one receiver of board change notifications.
type WebhookTarget struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
	// Secret, when set, keys the HMAC signature sent with every delivery.
	Secret string `koanf:"secret"`
}

// ClientConfig holds outbound HTTP client settings shared by every target.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig caps outbound requests per target. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
