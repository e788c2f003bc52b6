package ports

import (
	"context"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
)

// Listener receives the full project collection after every mutation.
// The snapshot is immutable and may be retained.
//
// Listeners run on whichever goroutine made or is draining the mutation, and
// a listener may be called once more after its remove func has returned.
// Consumers that own state which is not safe for concurrent use must hand
// the snapshot over to their own goroutine instead of touching that state
// directly.
type Listener func(project.Snapshot)

// ProjectStore is the single authoritative holder of all projects and the
// notifier of everything that renders them. Implemented by the application
// layer; called by widgets, HTTP handlers and the webhook notifier.
type ProjectStore interface {
	// AddProject creates an active project with a fresh id, appends it and
	// notifies every listener. Inputs are expected to be validated already.
	AddProject(ctx context.Context, title, description string, numberOfPeople int) project.Project

	// MoveProject changes the status of the project with the given id and
	// notifies listeners. An unknown id or an unchanged status is a silent
	// no-op; the result reports whether anything changed.
	MoveProject(ctx context.Context, id string, status project.Status) bool

	// AddListener registers l for every future mutation, after all listeners
	// registered before it. Registering the same function twice delivers twice.
	// The returned func detaches this registration.
	AddListener(l Listener) (remove func())

	// Snapshot returns the current project collection.
	Snapshot() project.Snapshot
}
