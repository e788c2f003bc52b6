package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen11/project-board/internal/app/fanout"
	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// ErrNotifierStopped is returned by Start after Stop.
var ErrNotifierStopped = errors.New("notifier stopped")

// NotifierOptions tunes the notifier. Zero values fall back to one worker,
// a queue of 64 changes and a 10s delivery timeout.
type NotifierOptions struct {
	Workers         int
	QueueSize       int
	DeliveryTimeout time.Duration
}

// Notifier forwards every store change to the webhook clients.
//
// The store listener only enqueues, so store delivery never waits on the
// network. When the queue is full the oldest pending change is dropped; the
// sequence number still advances so receivers see the gap. A single worker
// drains the queue and fans each change out to all clients concurrently.
type Notifier struct {
	store   ports.ProjectStore
	clients []ports.WebhookClient
	opts    NotifierOptions
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	queue   chan ports.BoardChange
	seq     uint64
	dropped uint64
	started bool
	stopped bool
	remove  func()
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewNotifier creates a notifier for clients. Nothing is delivered until
// Start registers it with the store.
func NewNotifier(store ports.ProjectStore, clients []ports.WebhookClient, opts NotifierOptions, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 64
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = 10 * time.Second
	}
	return &Notifier{
		store:   store,
		clients: clients,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		queue:   make(chan ports.BoardChange, opts.QueueSize),
		done:    make(chan struct{}),
	}
}

// Start subscribes to the store and launches the delivery worker. The
// worker's context derives from ctx without its cancellation; use Stop to end
// it. Calling Start twice is a no-op.
func (n *Notifier) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return ErrNotifierStopped
	}
	if n.started {
		return nil
	}
	n.started = true

	workCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	n.cancel = cancel
	go n.run(workCtx)
	n.remove = n.store.AddListener(n.enqueue)

	n.logger.InfoContext(ctx, "webhook notifier started",
		slog.Int("targets", len(n.clients)),
		slog.Int("workers", n.opts.Workers),
		slog.Int("queue_size", n.opts.QueueSize),
	)
	return nil
}

// Stop unsubscribes from the store and waits for queued changes to be
// delivered. When ctx ends first, in-flight deliveries are canceled and
// ctx.Err() is returned.
func (n *Notifier) Stop(ctx context.Context) error {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return nil
	}
	n.stopped = true
	started := n.started
	if n.remove != nil {
		n.remove()
	}
	close(n.queue)
	n.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-n.done:
		n.cancel()
		return nil
	case <-ctx.Done():
		n.cancel()
		<-n.done
		return ctx.Err()
	}
}

// Dropped reports how many changes were discarded because the queue was full.
func (n *Notifier) Dropped() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.dropped
}

func (n *Notifier) enqueue(snap project.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}

	n.seq++
	change := ports.BoardChange{Sequence: n.seq, At: n.now(), Snapshot: snap}
	for {
		select {
		case n.queue <- change:
			return
		default:
		}
		select {
		case old := <-n.queue:
			n.dropped++
			n.logger.Warn("webhook queue full, dropping oldest change",
				slog.Uint64("sequence", old.Sequence),
			)
		default:
		}
	}
}

func (n *Notifier) run(ctx context.Context) {
	defer close(n.done)
	for change := range n.queue {
		n.deliver(ctx, change)
	}
}

func (n *Notifier) deliver(ctx context.Context, change ports.BoardChange) {
	ctx, cancel := context.WithTimeout(ctx, n.opts.DeliveryTimeout)
	defer cancel()

	results := fanout.Run(ctx, n.opts.Workers, n.clients,
		func(ctx context.Context, c ports.WebhookClient) (struct{}, error) {
			return struct{}{}, c.Deliver(ctx, change)
		})

	for i, r := range results {
		if r.Err != nil {
			n.logger.ErrorContext(ctx, "webhook delivery failed",
				slog.String("operation", "Notifier.deliver"),
				slog.String("target", n.clients[i].Name()),
				slog.Uint64("sequence", change.Sequence),
				slog.Any("error", r.Err),
			)
		}
	}
	if err := fanout.Join(results); err == nil {
		n.logger.DebugContext(ctx, "board change delivered",
			slog.Uint64("sequence", change.Sequence),
			slog.Int("targets", len(n.clients)),
		)
	}
}
