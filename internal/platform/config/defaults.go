package config

const (
	defaultServerPort = 8080

	defaultSessionReadLimit   = 64 << 10
	defaultSessionMaxSessions = 1024

	defaultWebhookWorkers   = 4
	defaultWebhookQueueSize = 64

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults is the lowest configuration layer. Every key listed here can be
// overridden from the environment even when no YAML file mentions it.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.request_timeout":  "30s",
		"server.shutdown_timeout": "15s",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "project-board",

		"session.read_limit":    defaultSessionReadLimit,
		"session.write_timeout": "10s",
		"session.ping_interval": "30s",
		"session.pong_wait":     "60s",
		"session.max_sessions":  defaultSessionMaxSessions,

		"webhook.enabled":    false,
		"webhook.workers":    defaultWebhookWorkers,
		"webhook.queue_size": defaultWebhookQueueSize,

		"webhook.client.timeout":                         "10s",
		"webhook.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"webhook.client.retry.initial_interval":          "100ms",
		"webhook.client.retry.max_interval":              "5s",
		"webhook.client.retry.multiplier":                defaultRetryMultiplier,
		"webhook.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"webhook.client.circuit_breaker.timeout":         "30s",
		"webhook.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"webhook.client.rate_limit.requests_per_second":  0,
		"webhook.client.rate_limit.burst_size":           1,
	}
}
