// Package app provides the application services: the observable project store
// that every widget renders from, and the webhook notifier that forwards its
// changes to outbound targets through port interfaces.
package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
	"github.com/jsamuelsen11/project-board/internal/platform/telemetry"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// Compile-time check that ProjectStore implements ports.ProjectStore.
var _ ports.ProjectStore = (*ProjectStore)(nil)

// ProjectStore implements ports.ProjectStore as an in-memory, ordered
// collection with synchronous listener notification.
//
// State changes happen under mu; listeners are always invoked without it.
// Snapshots produced by mutations are queued and delivered by whichever
// goroutine is not already delivering, so a listener that mutates the store
// (or a concurrent caller) never recurses into delivery: its notification is
// delivered after the current round, in mutation order.
type ProjectStore struct {
	mu        sync.Mutex
	projects  []project.Project
	listeners []listenerEntry
	lastID    uint64
	pending   []project.Snapshot
	emitting  bool

	newID   func() string
	now     func() time.Time
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

type listenerEntry struct {
	id uint64
	fn ports.Listener
}

// StoreOption configures a ProjectStore.
type StoreOption func(*ProjectStore)

// WithIDGenerator replaces the UUID v4 id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *ProjectStore) { s.newID = fn }
}

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(fn func() time.Time) StoreOption {
	return func(s *ProjectStore) { s.now = fn }
}

// NewProjectStore creates an empty store. A nil logger discards output and
// nil metrics skip instrumentation.
func NewProjectStore(logger *slog.Logger, metrics *telemetry.Metrics, opts ...StoreOption) *ProjectStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &ProjectStore{
		newID:   uuid.NewString,
		now:     time.Now,
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProject appends a new active project and notifies every listener.
func (s *ProjectStore) AddProject(ctx context.Context, title, description string, numberOfPeople int) project.Project {
	s.mu.Lock()
	p := project.Project{
		ID:             s.newID(),
		Title:          title,
		Description:    description,
		NumberOfPeople: numberOfPeople,
		Status:         project.StatusActive,
		CreatedAt:      s.now(),
	}
	s.projects = append(s.projects, p)
	s.pending = append(s.pending, project.NewSnapshot(s.projects))
	s.mu.Unlock()

	s.log(ctx).InfoContext(ctx, "project added",
		slog.String("operation", "AddProject"),
		slog.String("project_id", p.ID),
		slog.Int("number_of_people", numberOfPeople),
	)
	s.recordMutation(ctx, "add")

	s.drain()
	return p
}

// MoveProject sets the status of the project with the given id. Unknown ids,
// unchanged statuses and unknown statuses are no-ops and notify nobody.
func (s *ProjectStore) MoveProject(ctx context.Context, id string, status project.Status) bool {
	if !status.IsValid() {
		s.log(ctx).WarnContext(ctx, "project move to unknown status rejected",
			slog.String("operation", "MoveProject"),
			slog.String("project_id", id),
			slog.String("status", status.String()),
		)
		return false
	}

	s.mu.Lock()
	idx := slices.IndexFunc(s.projects, func(p project.Project) bool { return p.ID == id })
	if idx < 0 || s.projects[idx].Status == status {
		s.mu.Unlock()
		s.log(ctx).DebugContext(ctx, "project move ignored",
			slog.String("operation", "MoveProject"),
			slog.String("project_id", id),
			slog.String("status", status.String()),
			slog.Bool("found", idx >= 0),
		)
		return false
	}
	from := s.projects[idx].Status
	s.projects[idx].Status = status
	s.pending = append(s.pending, project.NewSnapshot(s.projects))
	s.mu.Unlock()

	s.log(ctx).InfoContext(ctx, "project moved",
		slog.String("operation", "MoveProject"),
		slog.String("project_id", id),
		slog.String("from", from.String()),
		slog.String("to", status.String()),
	)
	s.recordMutation(ctx, "move")

	s.drain()
	return true
}

// AddListener registers l after every existing listener.
func (s *ProjectStore) AddListener(l ports.Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	id := s.lastID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})

	var once sync.Once
	return func() {
		once.Do(func() { s.removeListener(id) })
	}
}

// Snapshot returns the current project collection.
func (s *ProjectStore) Snapshot() project.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return project.NewSnapshot(s.projects)
}

// ListenerCount returns the number of registered listeners.
func (s *ProjectStore) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *ProjectStore) removeListener(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool { return e.id == id })
}

// drain delivers queued snapshots until the queue is empty. Only one
// goroutine drains at a time; everyone else just enqueues.
func (s *ProjectStore) drain() {
	s.mu.Lock()
	if s.emitting {
		s.mu.Unlock()
		return
	}
	s.emitting = true

	for len(s.pending) > 0 {
		snap := s.pending[0]
		s.pending = s.pending[1:]
		listeners := slices.Clone(s.listeners)
		s.mu.Unlock()

		s.deliver(snap, listeners)

		s.mu.Lock()
	}

	s.emitting = false
	s.mu.Unlock()
}

// deliver calls every listener in registration order. A panicking listener
// is logged and skipped; the rest of the round still runs.
func (s *ProjectStore) deliver(snap project.Snapshot, listeners []listenerEntry) {
	for _, l := range listeners {
		s.notify(l, snap)
	}
}

func (s *ProjectStore) notify(l listenerEntry, snap project.Snapshot) {
	defer func() {
		if v := recover(); v != nil {
			s.logger.Error("listener panicked",
				slog.String("operation", "deliver"),
				slog.Uint64("listener", l.id),
				slog.Any("error", v),
			)
		}
	}()
	l.fn(snap)
}

func (s *ProjectStore) recordMutation(ctx context.Context, kind string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ProjectMutationTotal.Add(ctx, 1, metric.WithAttributes(telemetry.AttrMutation.String(kind)))
}

// log returns the request-scoped logger when ctx carries one, so mutations
// made through the API are tagged with request and correlation IDs.
func (s *ProjectStore) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
