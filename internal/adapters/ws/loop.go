package ws

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// loop runs a session's work one task at a time on a single goroutine.
// post never blocks, so store delivery on another goroutine cannot stall on
// a slow session.
type loop struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
}

func newLoop() *loop {
	return &loop{wake: make(chan struct{}, 1)}
}

func (l *loop) post(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// run executes tasks until ctx is done. idle runs whenever the queue has
// been emptied, after the last task of each batch.
func (l *loop) run(ctx context.Context, idle func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
		for {
			if ctx.Err() != nil {
				return
			}
			task, ok := l.next()
			if !ok {
				break
			}
			task()
		}
		idle()
	}
}

func (l *loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil, false
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task, true
}

// loopStore is the store as seen by one session's widgets: mutations go
// straight through, notifications are posted onto the session loop. Each
// listener has at most one notification queued; snapshots arriving while it
// waits replace the queued one, so a slow session holds one snapshot per
// listener however many mutations it falls behind.
type loopStore struct {
	ports.ProjectStore
	loop *loop
}

func (s loopStore) AddListener(l ports.Listener) func() {
	c := &coalescer{loop: s.loop, listener: l}
	return s.ProjectStore.AddListener(c.offer)
}

type coalescer struct {
	loop     *loop
	listener ports.Listener

	mu     sync.Mutex
	latest project.Snapshot
	queued bool
}

func (c *coalescer) offer(snap project.Snapshot) {
	c.mu.Lock()
	c.latest = snap
	if c.queued {
		c.mu.Unlock()
		return
	}
	c.queued = true
	c.mu.Unlock()

	c.loop.post(c.deliver)
}

func (c *coalescer) deliver() {
	c.mu.Lock()
	snap := c.latest
	c.latest = project.Snapshot{}
	c.queued = false
	c.mu.Unlock()

	c.listener(snap)
}
