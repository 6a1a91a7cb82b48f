package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand represents an administrative deletion of a single order line.
type RemoveLineCommand struct {
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineCommand creates a command to delete one line.
func NewRemoveLineCommand(lineID kernel.UUID) (RemoveLineCommand, error) {
	if err := lineID.Validate(); err != nil {
		return RemoveLineCommand{}, err
	}

	return RemoveLineCommand{
		lineID: lineID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

// LineID returns the identifier of the line to delete.
func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}
