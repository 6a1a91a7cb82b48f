package commands

import (
	"errors"

	"tableside/internal/core/domain/model/line"
	"tableside/internal/pkg/guard"
)

var (
	ErrCleanupLinesCommandIsNotConstructed = errors.New(
		"CleanupLinesCommand must be created via NewCleanupLinesCommand constructor",
	)
	ErrCleanupFilterIsRequired = errors.New(
		"cleanup requires a status filter or the explicit all flag",
	)
	ErrCleanupFilterIsAmbiguous = errors.New(
		"cleanup accepts either a status filter or the all flag, not both",
	)
)

// CleanupLinesCommand represents an administrative bulk deletion of order
// lines: either every line in a given status set, or all lines outright.
// The all form is irreversible; callers gate it behind explicit confirmation.
type CleanupLinesCommand struct {
	statuses []line.Status
	all      bool

	guard guard.ConstructorGuard
}

// NewCleanupLinesCommand creates a cleanup command. Exactly one filter form
// must be supplied: a non-empty status set, or all=true.
func NewCleanupLinesCommand(statuses []line.Status, all bool) (CleanupLinesCommand, error) {
	if all && len(statuses) > 0 {
		return CleanupLinesCommand{}, ErrCleanupFilterIsAmbiguous
	}
	if !all && len(statuses) == 0 {
		return CleanupLinesCommand{}, ErrCleanupFilterIsRequired
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return CleanupLinesCommand{}, err
		}
	}

	copied := make([]line.Status, len(statuses))
	copy(copied, statuses)

	return CleanupLinesCommand{
		statuses: copied,
		all:      all,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CleanupLinesCommand) Validate() error {
	return c.guard.Validate(ErrCleanupLinesCommandIsNotConstructed)
}

// Statuses returns the status filter; empty when All is set.
func (c CleanupLinesCommand) Statuses() []line.Status {
	return c.statuses
}

// All reports whether every line is to be deleted.
func (c CleanupLinesCommand) All() bool {
	return c.all
}
