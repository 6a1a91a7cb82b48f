package commands

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/pkg/guard"
)

var ErrAdvanceLineCommandIsNotConstructed = errors.New(
	"AdvanceLineCommand must be created via NewAdvanceLineCommand constructor",
)

// AdvanceLineCommand represents a staff request to move one order line to a
// new status. Requesting the status the line already holds is legal and
// treated as a no-op, so retried requests are safe.
type AdvanceLineCommand struct {
	lineID kernel.UUID
	status line.Status

	guard guard.ConstructorGuard
}

// NewAdvanceLineCommand creates a command to change a line's status.
// Validates that the line reference is constructed and the requested status
// is a recognized value; whether the move is legal from the line's current
// status is decided inside the transaction, against the committed row.
func NewAdvanceLineCommand(lineID kernel.UUID, status line.Status) (AdvanceLineCommand, error) {
	if err := lineID.Validate(); err != nil {
		return AdvanceLineCommand{}, err
	}
	if err := status.Validate(); err != nil {
		return AdvanceLineCommand{}, err
	}

	return AdvanceLineCommand{
		lineID: lineID,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceLineCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceLineCommandIsNotConstructed)
}

// LineID returns the identifier of the line being advanced.
func (c AdvanceLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Status returns the requested target status.
func (c AdvanceLineCommand) Status() line.Status {
	return c.status
}
