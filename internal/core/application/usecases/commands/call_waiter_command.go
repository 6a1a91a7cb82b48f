package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrCallWaiterCommandIsNotConstructed = errors.New(
	"CallWaiterCommand must be created via NewCallWaiterCommand constructor",
)

// CallWaiterCommand represents a diner pressing the call-waiter button.
// Nothing is persisted; the request becomes a transient staff notification.
type CallWaiterCommand struct {
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCallWaiterCommand creates a command to notify staff for a table.
func NewCallWaiterCommand(tableID kernel.UUID) (CallWaiterCommand, error) {
	if err := tableID.Validate(); err != nil {
		return CallWaiterCommand{}, err
	}

	return CallWaiterCommand{
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CallWaiterCommand) Validate() error {
	return c.guard.Validate(ErrCallWaiterCommandIsNotConstructed)
}

// TableID returns the table requesting service.
func (c CallWaiterCommand) TableID() kernel.UUID {
	return c.tableID
}
