package commands

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderEntryIsNotConstructed = errors.New(
		"OrderEntry must be created via NewOrderEntry constructor",
	)
	ErrOrderHasNoEntries = errors.New("order must contain at least one entry")
)

// OrderEntry is one requested item-and-quantity pair inside a placement
// request, before it becomes a persisted order line.
type OrderEntry struct {
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewOrderEntry creates an entry, validating that the item reference is a
// constructed UUID and the quantity is at least 1.
func NewOrderEntry(itemID kernel.UUID, quantity int) (OrderEntry, error) {
	if err := itemID.Validate(); err != nil {
		return OrderEntry{}, err
	}
	if quantity < 1 {
		return OrderEntry{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return OrderEntry{
		itemID:   itemID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through the constructor.
func (e OrderEntry) Validate() error {
	return e.guard.Validate(ErrOrderEntryIsNotConstructed)
}

// ItemID returns the referenced catalog item identifier.
func (e OrderEntry) ItemID() kernel.UUID {
	return e.itemID
}

// Quantity returns the number of units requested.
func (e OrderEntry) Quantity() int {
	return e.quantity
}

// PlaceOrderCommand represents a diner's order placement: a batch of entries
// for one table, persisted all-or-nothing with a shared placement instant.
//
// Example:
//
//	entry, _ := commands.NewOrderEntry(itemID, 2)
//	cmd, err := commands.NewPlaceOrderCommand(tableID, []commands.OrderEntry{entry})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	tableID kernel.UUID
	entries []OrderEntry

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order.
// Validates that the table reference is constructed and the batch is
// non-empty with every entry properly constructed.
func NewPlaceOrderCommand(tableID kernel.UUID, entries []OrderEntry) (PlaceOrderCommand, error) {
	if err := tableID.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}
	if len(entries) == 0 {
		return PlaceOrderCommand{}, ErrOrderHasNoEntries
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return PlaceOrderCommand{}, err
		}
	}

	copied := make([]OrderEntry, len(entries))
	copy(copied, entries)

	return PlaceOrderCommand{
		tableID: tableID,
		entries: copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// TableID returns the table the order is placed from.
func (c PlaceOrderCommand) TableID() kernel.UUID {
	return c.tableID
}

// Entries returns the requested item-and-quantity pairs.
func (c PlaceOrderCommand) Entries() []OrderEntry {
	return c.entries
}
