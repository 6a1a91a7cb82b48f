package ports

import (
	"context"

	"tableside/internal/core/domain/events"
)

// EventPublisher is the capability handed to command handlers for announcing
// committed changes. It is always an injected dependency, never a process
// global, so the engine stays testable without a live push channel.
//
// Publish is best-effort and must not block on slow observers: a failed or
// dropped delivery is never surfaced to the request that triggered it,
// because the write it announces has already committed.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
