package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
)

// BoardChange is one store notification as forwarded to outbound targets.
// Sequence increases by one per change so receivers can spot gaps.
type BoardChange struct {
	Sequence uint64
	At       time.Time
	Snapshot project.Snapshot
}

// WebhookClient defines the client port for one outbound webhook target.
// Implemented by the webhook adapter; called by the application-layer
// notifier. Every client is also a HealthChecker reporting the target's
// availability.
type WebhookClient interface {
	HealthChecker

	// Deliver posts change to the target. The adapter owns the wire payload.
	// Returns domain.ErrUnavailable when the target cannot be reached or
	// fails, and domain.ErrValidation when it rejects the payload.
	Deliver(ctx context.Context, change BoardChange) error
}
