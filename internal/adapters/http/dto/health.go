package dto

// Health status values reported by the probe endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of the liveness and readiness probes. Checks
// maps each component name to "ok" or its failure message and is omitted
// by the liveness probe.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToHealthResponse folds per-component check results into a readiness
// response. It reports whether every component is healthy.
func ToHealthResponse(results map[string]error) (HealthResponse, bool) {
	checks := make(map[string]string, len(results))
	healthy := true
	for name, err := range results {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = HealthOK
	}

	status := HealthReady
	if !healthy {
		status = HealthNotReady
	}
	return HealthResponse{Status: status, Checks: checks}, healthy
}
