package ports

import "context"

// HealthChecker is a component whose state decides readiness: the live
// session hub and each webhook target.
type HealthChecker interface {
	// Name identifies the component in readiness output, for example
	// "sessions" or "webhook:audit".
	Name() string

	// HealthCheck returns nil when the component can serve. It must return
	// promptly once ctx is done; the registry bounds every check.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers and runs them for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll runs every registered check and returns the results by name,
	// nil meaning healthy.
	CheckAll(ctx context.Context) map[string]error
}
