package commands

import (
	"context"
	"sync"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/ports"
)

// AdvanceLineCommandHandler handles status transitions on order lines.
//
// The line row is read under a row-level lock, so two concurrent advances on
// the same line serialize at the store: the second caller observes the first
// caller's committed status and is re-validated against it rather than
// applied blindly from its stale view. The order.statusChanged event is
// published only after commit, and only when the status actually changed;
// a per-line publish lock held across commit and publish keeps the events
// in commit order.
type AdvanceLineCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher

	// publishLocks maps line id to the mutex serializing that line's
	// commit-and-publish section.
	publishLocks *sync.Map
}

// NewAdvanceLineCommandHandler creates a handler for line status transitions.
func NewAdvanceLineCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AdvanceLineCommandHandler {
	return AdvanceLineCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		publishLocks: &sync.Map{},
	}
}

// lockLine takes the line's publish lock and returns the release func.
func (h *AdvanceLineCommandHandler) lockLine(id kernel.UUID) func() {
	v, _ := h.publishLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Handle processes the transition command.
// A same-status request succeeds without writing or publishing. An illegal
// move fails with an IllegalTransitionError carrying the line's current
// status and the allowed-next set. Returns the line's authoritative state
// with denormalized item name and price.
func (h *AdvanceLineCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceLineCommand,
) (events.LineSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return events.LineSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return events.LineSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	l, err := uow.LineRepository().GetForUpdate(ctx, cmd.LineID())
	if err != nil {
		return events.LineSnapshot{}, err
	}

	changed, err := l.ChangeStatus(cmd.Status())
	if err != nil {
		return events.LineSnapshot{}, err
	}

	if changed {
		if err = uow.LineRepository().Update(ctx, l); err != nil {
			return events.LineSnapshot{}, err
		}
	}

	item, err := uow.MenuRepository().Get(ctx, l.ItemID())
	if err != nil {
		return events.LineSnapshot{}, err
	}

	// The row lock ends at commit. Without further serialization a handler
	// preempted between its commit and its publish would let a later
	// transition reach subscribers first; holding the line's publish lock
	// across both keeps event order equal to commit order.
	unlock := h.lockLine(cmd.LineID())
	defer unlock()

	if err = uow.Commit(ctx); err != nil {
		return events.LineSnapshot{}, err
	}

	if changed {
		h.publisher.Publish(ctx, events.LineStatusChanged{
			LineID:  l.ID().String(),
			TableID: l.TableID().String(),
			Status:  l.Status().String(),
		})
	}

	return snapshotOf(l, item), nil
}
