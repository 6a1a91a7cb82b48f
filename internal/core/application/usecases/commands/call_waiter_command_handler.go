package commands

import (
	"context"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/ports"
)

// CallWaiterCommandHandler validates the table and publishes a waiter.called
// notification on the bus. No transaction is opened: nothing is written.
type CallWaiterCommandHandler struct {
	uowFactory TableUoWFactory
	publisher  ports.EventPublisher
}

// NewCallWaiterCommandHandler creates a handler for waiter calls.
func NewCallWaiterCommandHandler(uowFactory TableUoWFactory, publisher ports.EventPublisher) CallWaiterCommandHandler {
	return CallWaiterCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the waiter call. Fails with ObjectNotFoundError when the
// table does not exist.
func (h *CallWaiterCommandHandler) Handle(ctx context.Context, cmd CallWaiterCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	tbl, err := uow.TableRepository().Get(ctx, cmd.TableID())
	if err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.WaiterCalled{
		TableID:     tbl.ID().String(),
		TableNumber: tbl.Number(),
	})

	return nil
}
