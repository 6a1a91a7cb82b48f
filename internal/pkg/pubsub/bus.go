// Package pubsub provides the in-process event bus connecting command
// handlers to live staff views. Delivery is best effort: events exist to
// nudge connected views ahead of their next authoritative snapshot, so a
// lost event costs freshness, never correctness.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"tableside/internal/core/domain/events"
)

// defaultBufferSize is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events until it drains.
const defaultBufferSize = 64

// Bus fans events out to all current subscribers without blocking the
// publisher. Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan events.Event
	nextID      int
	closed      bool

	logger *slog.Logger
}

// NewBus creates an event bus. The logger reports dropped events.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[int]chan events.Event),
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its event channel along
// with a cancel function. Cancel is idempotent; after cancel the channel is
// closed and must not be read for further events.
func (b *Bus) Subscribe() (<-chan events.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan events.Event, defaultBufferSize)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subscribers[id]; ok {
				delete(b.subscribers, id)
				close(ch)
			}
		})
	}

	return ch, cancel
}

// Publish delivers the event to every subscriber that has buffer room.
// Never blocks: a full subscriber loses the event and catches up on its
// next snapshot.
func (b *Bus) Publish(ctx context.Context, event events.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.logger.WarnContext(ctx, "dropping event for slow subscriber",
				slog.String("kind", event.Kind()),
				slog.Int("subscriber", id),
			)
		}
	}
}

// Close shuts the bus down. All subscriber channels are closed and further
// publishes are discarded.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
}
