package app

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
)

const validDescription = "A description that is over twenty characters."

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func sequentialIDs() StoreOption {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	})
}

func newTestStore() *ProjectStore {
	return NewProjectStore(discardLogger(), nil, sequentialIDs(),
		WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
}

// recorder collects every snapshot a listener receives.
type recorder struct {
	mu    sync.Mutex
	snaps []project.Snapshot
}

func (r *recorder) listen(s project.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func (r *recorder) last() project.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snaps[len(r.snaps)-1]
}

func TestNewProjectStore_NilLogger(t *testing.T) {
	t.Parallel()

	s := NewProjectStore(nil, nil)
	if s.logger == nil {
		t.Fatal("NewProjectStore(nil logger) should create a no-op logger, got nil")
	}
}

func TestProjectStore_LogsWithRequestLogger(t *testing.T) {
	t.Parallel()

	var storeBuf, reqBuf bytes.Buffer
	s := NewProjectStore(slog.New(slog.NewTextHandler(&storeBuf, nil)), nil, sequentialIDs())
	reqLogger := slog.New(slog.NewTextHandler(&reqBuf, nil)).With(slog.String("request_id", "req-9"))

	s.AddProject(logging.WithLogger(context.Background(), reqLogger), "Build a deck", validDescription, 3)
	s.AddProject(context.Background(), "Paint the fence", validDescription, 1)

	if !strings.Contains(reqBuf.String(), "request_id=req-9") || !strings.Contains(reqBuf.String(), "project_id=p-1") {
		t.Errorf("request logger output = %q, want request-scoped add of p-1", reqBuf.String())
	}
	if !strings.Contains(storeBuf.String(), "project_id=p-2") {
		t.Errorf("store logger output = %q, want fallback add of p-2", storeBuf.String())
	}
	if strings.Contains(storeBuf.String(), "project_id=p-1") {
		t.Error("store logger should not receive the request-scoped mutation")
	}
}

func TestProjectStore_AddProject(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	rec := &recorder{}
	s.AddListener(rec.listen)

	p := s.AddProject(context.Background(), "Build a deck", validDescription, 3)

	if p.ID != "p-1" {
		t.Errorf("ID = %q, want p-1", p.ID)
	}
	if p.Status != project.StatusActive {
		t.Errorf("Status = %q, want active", p.Status)
	}
	if rec.count() != 1 {
		t.Fatalf("notifications = %d, want 1", rec.count())
	}
	snap := rec.last()
	if snap.Len() != 1 || snap.At(0).Title != "Build a deck" {
		t.Errorf("snapshot = %+v, want the new project", snap.Projects())
	}
}

func TestProjectStore_AddProjectDefaultIDsAreUnique(t *testing.T) {
	t.Parallel()

	s := NewProjectStore(discardLogger(), nil)
	seen := make(map[string]bool)
	for range 50 {
		p := s.AddProject(context.Background(), "T", validDescription, 1)
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestProjectStore_ListenersInRegistrationOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	var order []string
	s.AddListener(func(project.Snapshot) { order = append(order, "first") })
	s.AddListener(func(project.Snapshot) { order = append(order, "second") })

	s.AddProject(context.Background(), "T", validDescription, 1)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestProjectStore_DuplicateListenerCalledTwice(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	rec := &recorder{}
	s.AddListener(rec.listen)
	s.AddListener(rec.listen)

	s.AddProject(context.Background(), "T", validDescription, 1)

	if rec.count() != 2 {
		t.Errorf("notifications = %d, want 2", rec.count())
	}
}

func TestProjectStore_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	var got project.Snapshot
	s.AddListener(func(snap project.Snapshot) { got = snap })

	s.AddProject(context.Background(), "T", validDescription, 1)
	mutated := got.Projects()
	mutated[0].Status = project.StatusFinished

	if s.Snapshot().At(0).Status != project.StatusActive {
		t.Error("listener mutated store-owned state through its snapshot")
	}

	s.MoveProject(context.Background(), "p-1", project.StatusFinished)
	if got.At(0).Status != project.StatusFinished {
		t.Errorf("latest snapshot status = %q, want finished", got.At(0).Status)
	}
}

func TestProjectStore_MoveProject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		id          string
		status      project.Status
		wantChanged bool
		wantNotify  int
	}{
		{name: "changes status", id: "p-1", status: project.StatusFinished, wantChanged: true, wantNotify: 1},
		{name: "same status is a no-op", id: "p-1", status: project.StatusActive},
		{name: "unknown id is a no-op", id: "missing", status: project.StatusFinished},
		{name: "unknown status is a no-op", id: "p-1", status: "archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestStore()
			s.AddProject(context.Background(), "T", validDescription, 1)
			before := s.Snapshot()

			rec := &recorder{}
			s.AddListener(rec.listen)

			changed := s.MoveProject(context.Background(), tt.id, tt.status)

			if changed != tt.wantChanged {
				t.Errorf("MoveProject() = %v, want %v", changed, tt.wantChanged)
			}
			if rec.count() != tt.wantNotify {
				t.Errorf("notifications = %d, want %d", rec.count(), tt.wantNotify)
			}
			if !tt.wantChanged && s.Snapshot().At(0) != before.At(0) {
				t.Errorf("state changed on no-op: %+v -> %+v", before.At(0), s.Snapshot().At(0))
			}
		})
	}
}

func TestProjectStore_MoveProjectIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	p := s.AddProject(context.Background(), "T", validDescription, 1)
	rec := &recorder{}
	s.AddListener(rec.listen)

	for range 5 {
		s.MoveProject(context.Background(), p.ID, project.StatusFinished)
	}

	if rec.count() != 1 {
		t.Errorf("notifications = %d, want exactly 1", rec.count())
	}
}

func TestProjectStore_RemoveListener(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	rec := &recorder{}
	remove := s.AddListener(rec.listen)

	s.AddProject(context.Background(), "T", validDescription, 1)
	remove()
	remove()
	s.AddProject(context.Background(), "T", validDescription, 1)

	if rec.count() != 1 {
		t.Errorf("notifications = %d, want 1 after removal", rec.count())
	}
	if s.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d, want 0", s.ListenerCount())
	}
}

func TestProjectStore_ReentrantMutationIsQueued(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	var seen []int

	// The first listener moves every new project to finished while it is
	// being notified about the addition.
	s.AddListener(func(snap project.Snapshot) {
		seen = append(seen, len(snap.WithStatus(project.StatusActive)))
		for _, p := range snap.WithStatus(project.StatusActive) {
			s.MoveProject(context.Background(), p.ID, project.StatusFinished)
		}
	})
	rec := &recorder{}
	s.AddListener(rec.listen)

	s.AddProject(context.Background(), "T", validDescription, 1)

	// Round 1 (add) reaches both listeners before round 2 (move) starts.
	if rec.count() != 2 {
		t.Fatalf("second listener notifications = %d, want 2", rec.count())
	}
	if got := rec.snaps[0].At(0).Status; got != project.StatusActive {
		t.Errorf("first delivered status = %q, want active", got)
	}
	if got := rec.snaps[1].At(0).Status; got != project.StatusFinished {
		t.Errorf("second delivered status = %q, want finished", got)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 0 {
		t.Errorf("first listener saw active counts %v, want [1 0]", seen)
	}
}

func TestProjectStore_PanickingListenerIsSkipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewProjectStore(slog.New(slog.NewJSONHandler(&buf, nil)), nil)
	before := &recorder{}
	s.AddListener(before.listen)
	boom := true
	s.AddListener(func(project.Snapshot) {
		if boom {
			boom = false
			panic("listener failed")
		}
	})
	after := &recorder{}
	s.AddListener(after.listen)

	s.AddProject(context.Background(), "T", validDescription, 1)

	if before.count() != 1 || after.count() != 1 {
		t.Fatalf("notifications before/after the panicking listener = %d/%d, want 1/1",
			before.count(), after.count())
	}
	if !strings.Contains(buf.String(), `"msg":"listener panicked"`) ||
		!strings.Contains(buf.String(), `"error":"listener failed"`) {
		t.Errorf("log missing panic record: %s", buf.String())
	}

	s.AddProject(context.Background(), "U", validDescription, 1)

	if after.count() != 2 {
		t.Fatalf("notifications after recovery = %d, want 2", after.count())
	}
	if got := after.last().Len(); got != 2 {
		t.Errorf("last snapshot len = %d, want 2", got)
	}
}

func TestProjectStore_PanicDuringDrainKeepsQueuedRounds(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	// Queue a second round from inside the first, then fail.
	first := true
	s.AddListener(func(snap project.Snapshot) {
		if first {
			first = false
			s.MoveProject(context.Background(), snap.At(0).ID, project.StatusFinished)
			panic("listener failed")
		}
	})
	rec := &recorder{}
	s.AddListener(rec.listen)

	s.AddProject(context.Background(), "T", validDescription, 1)

	if rec.count() != 2 {
		t.Fatalf("notifications = %d, want 2 (add and queued move)", rec.count())
	}
	if got := rec.last().At(0).Status; got != project.StatusFinished {
		t.Errorf("last delivered status = %q, want finished", got)
	}
}

func TestProjectStore_ConcurrentMutationsDeliverEverything(t *testing.T) {
	t.Parallel()

	s := NewProjectStore(discardLogger(), nil)
	rec := &recorder{}
	s.AddListener(rec.listen)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				s.AddProject(context.Background(), "T", validDescription, 2)
			}
		}()
	}
	wg.Wait()

	if rec.count() != writers*perWriter {
		t.Errorf("notifications = %d, want %d", rec.count(), writers*perWriter)
	}
	if got := rec.last().Len(); got != writers*perWriter {
		t.Errorf("last snapshot len = %d, want %d", got, writers*perWriter)
	}
	for i := 1; i < len(rec.snaps); i++ {
		if rec.snaps[i].Len() < rec.snaps[i-1].Len() {
			t.Fatalf("snapshot %d shrank from %d to %d: deliveries out of order", i, rec.snaps[i-1].Len(), rec.snaps[i].Len())
		}
	}
}
