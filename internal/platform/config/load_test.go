package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsamuelsen11/project-board/internal/platform/config"
)

func TestLoad_LocalProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\"", cfg.Log.Format)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false for local")
	}
	if cfg.Webhook.Enabled {
		t.Error("Webhook.Enabled = true, want false for local")
	}
}

func TestLoad_DevProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("dev")
	if err != nil {
		t.Fatalf("Load(\"dev\") error: %v", err)
	}

	if !cfg.Webhook.Enabled {
		t.Fatal("Webhook.Enabled = false, want true for dev")
	}
	if len(cfg.Webhook.Targets) != 1 || cfg.Webhook.Targets[0].Name != "board-audit" {
		t.Errorf("Webhook.Targets = %+v, want one board-audit target", cfg.Webhook.Targets)
	}
}

func TestLoad_ProdProfile(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("prod")
	if err != nil {
		t.Fatalf("Load(\"prod\") error: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want \"info\"", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true for prod")
	}
	if cfg.Telemetry.Exporter != "otlp" {
		t.Errorf("Telemetry.Exporter = %q, want \"otlp\"", cfg.Telemetry.Exporter)
	}
	if cfg.Telemetry.Endpoint == "" {
		t.Error("Telemetry.Endpoint is empty, want non-empty for prod")
	}
	if cfg.Session.MaxSessions != 4096 {
		t.Errorf("Session.MaxSessions = %d, want 4096", cfg.Session.MaxSessions)
	}
	if cfg.Webhook.Client.RateLimit.RequestsPerSecond != 20 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want 20", cfg.Webhook.Client.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_BaseConfigInheritance(t *testing.T) {
	t.Chdir("../../..")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load(\"local\") error: %v", err)
	}

	// These come from base.yaml, not overridden by local.yaml.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want \"0.0.0.0\" (from base)", cfg.Server.Host)
	}
	if cfg.Session.PingInterval != 30*time.Second {
		t.Errorf("Session.PingInterval = %v, want 30s (from base)", cfg.Session.PingInterval)
	}
	if cfg.Webhook.Client.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3 (from base)", cfg.Webhook.Client.Retry.MaxAttempts)
	}
	if cfg.Webhook.Client.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("CircuitBreaker.MaxFailures = %d, want 5 (from base)",
			cfg.Webhook.Client.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_DefaultsFillMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "server:\n  port: 9000\n")
	writeFile(t, filepath.Join(dir, "bare.yaml"), "log:\n  level: warn\n")

	cfg, err := config.Load("bare", config.WithConfigDir(dir))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 5s (default)", cfg.Server.ReadTimeout)
	}
	if cfg.Session.ReadLimit != 64<<10 {
		t.Errorf("Session.ReadLimit = %d, want %d (default)", cfg.Session.ReadLimit, 64<<10)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json (default)", cfg.Log.Format)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SERVER_PORT", "9090")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (env override)", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_SESSION_PING_INTERVAL", "15s")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if want := 15 * time.Second; cfg.Session.PingInterval != want {
		t.Errorf("Session.PingInterval = %v, want %v (env override)", cfg.Session.PingInterval, want)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Chdir("../../..")
	t.Setenv("APP_WEBHOOK_CLIENT_RETRY_MAX_ATTEMPTS", "7")

	cfg, err := config.Load("local")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Webhook.Client.Retry.MaxAttempts != 7 {
		t.Errorf("Retry.MaxAttempts = %d, want 7 (env override)", cfg.Webhook.Client.Retry.MaxAttempts)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	t.Chdir("../../..")
	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, "APP_LOG_LEVEL=warn\nAPP_SERVER_PORT=7070\n")
	t.Setenv("APP_SERVER_PORT", "6060")
	t.Cleanup(func() { _ = os.Unsetenv("APP_LOG_LEVEL") })

	cfg, err := config.Load("local", config.WithEnvFiles(envFile, filepath.Join(t.TempDir(), "missing.env")))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn (from env file)", cfg.Log.Level)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Server.Port = %d, want 6060 (process env wins over env file)", cfg.Server.Port)
	}
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Chdir("../../..")

	if _, err := config.Load("nonexistent"); err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestLoad_RejectsUnsafeProfile(t *testing.T) {
	t.Parallel()

	for _, profile := range []string{"", "  ", "../etc", `a\b`, "a/b"} {
		if _, err := config.Load(profile); err == nil {
			t.Errorf("Load(%q) returned nil error, want error", profile)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{name: "valid config", modify: func(*config.Config) {}},
		{name: "invalid port", modify: func(c *config.Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "zero shutdown timeout", modify: func(c *config.Config) { c.Server.ShutdownTimeout = 0 }, wantErr: "server.shutdown_timeout"},
		{name: "invalid log level", modify: func(c *config.Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
		{name: "invalid log format", modify: func(c *config.Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
		{
			name: "otlp without endpoint",
			modify: func(c *config.Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Exporter = "otlp"
			},
			wantErr: "telemetry.endpoint",
		},
		{name: "pong wait not above ping", modify: func(c *config.Config) { c.Session.PongWait = c.Session.PingInterval }, wantErr: "session.pong_wait"},
		{name: "zero read limit", modify: func(c *config.Config) { c.Session.ReadLimit = 0 }, wantErr: "session.read_limit"},
		{name: "disabled webhook ignores empty targets", modify: func(c *config.Config) { c.Webhook.Enabled = false; c.Webhook.Targets = nil }},
		{name: "enabled webhook without targets", modify: func(c *config.Config) { c.Webhook.Targets = nil }, wantErr: "webhook.targets"},
		{
			name: "duplicate target names",
			modify: func(c *config.Config) {
				c.Webhook.Targets = append(c.Webhook.Targets, c.Webhook.Targets[0])
			},
			wantErr: "duplicate",
		},
		{name: "relative target url", modify: func(c *config.Config) { c.Webhook.Targets[0].URL = "/hooks" }, wantErr: "url"},
		{name: "zero workers", modify: func(c *config.Config) { c.Webhook.Workers = 0 }, wantErr: "webhook.workers"},
		{name: "zero attempts", modify: func(c *config.Config) { c.Webhook.Client.Retry.MaxAttempts = 0 }, wantErr: "max_attempts"},
		{
			name: "rate limit without burst",
			modify: func(c *config.Config) {
				c.Webhook.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: 5}
			},
			wantErr: "burst_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() returned error for valid config: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() returned nil, want error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := config.ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: config.TelemetryConfig{
			Enabled:  false,
			Exporter: "stdout",
		},
		Session: config.SessionConfig{
			ReadLimit:    64 << 10,
			WriteTimeout: 10 * time.Second,
			PingInterval: 30 * time.Second,
			PongWait:     60 * time.Second,
			MaxSessions:  16,
		},
		Webhook: config.WebhookConfig{
			Enabled:   true,
			Workers:   2,
			QueueSize: 8,
			Targets:   []config.WebhookTarget{{Name: "audit", URL: "http://localhost:8081/hooks"}},
			Client: config.ClientConfig{
				Timeout: 10 * time.Second,
				Retry: config.RetryConfig{
					MaxAttempts:     3,
					InitialInterval: 100 * time.Millisecond,
					MaxInterval:     5 * time.Second,
					Multiplier:      2.0,
				},
				CircuitBreaker: config.CircuitBreakerConfig{
					MaxFailures:   5,
					Timeout:       30 * time.Second,
					HalfOpenLimit: 1,
				},
			},
		},
	}
}
