package commands

import (
	"context"
	"time"

	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// The whole batch is written inside one transaction: a validation or
// persistence failure on any entry leaves zero lines behind, because a
// partially placed order would put an incomplete ticket in front of the
// kitchen. On successful commit it publishes one order.created event
// carrying every created line.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for announcing committed placements.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the placement command.
// Resolves the table and every referenced catalog item inside the
// transaction, creates one pending line per entry with a shared placement
// instant, and commits atomically. Returns the created lines with
// denormalized item names and prices.
func (h *PlaceOrderCommandHandler) Handle(
	ctx context.Context,
	cmd PlaceOrderCommand,
) ([]events.LineSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tbl, err := uow.TableRepository().Get(ctx, cmd.TableID())
	if err != nil {
		return nil, err
	}

	lineRepo := uow.LineRepository()
	menuRepo := uow.MenuRepository()

	placedAt := time.Now().UTC()
	snapshots := make([]events.LineSnapshot, 0, len(cmd.Entries()))

	for _, entry := range cmd.Entries() {
		item, itemErr := menuRepo.Get(ctx, entry.ItemID())
		if itemErr != nil {
			return nil, itemErr
		}

		l, lineErr := line.NewOrderLine(kernel.NewUUID(), tbl.ID(), item.ID(), entry.Quantity(), placedAt)
		if lineErr != nil {
			return nil, lineErr
		}

		if addErr := lineRepo.Add(ctx, l); addErr != nil {
			return nil, addErr
		}

		snapshots = append(snapshots, snapshotOf(l, item))
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, events.OrderCreated{
		TableID: tbl.ID().String(),
		Lines:   snapshots,
	})

	return snapshots, nil
}

// snapshotOf denormalizes a line and its catalog item into the wire shape
// shared by command results, events, and snapshots.
func snapshotOf(l *line.OrderLine, item *menu.MenuItem) events.LineSnapshot {
	return events.LineSnapshot{
		LineID:   l.ID().String(),
		TableID:  l.TableID().String(),
		ItemID:   l.ItemID().String(),
		Name:     item.Name(),
		Price:    item.Price().Amount(),
		Quantity: l.Quantity(),
		Status:   l.Status().String(),
		PlacedAt: l.PlacedAt(),
	}
}
