// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and event publication strictly after commit.
package commands

import (
	"context"

	"tableside/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LineRepoFactory provides access to the line repository within a transaction.
	LineRepoFactory interface {
		LineRepository() ports.LineRepository
	}

	// TableRepoFactory provides access to the table repository within a transaction.
	TableRepoFactory interface {
		TableRepository() ports.TableRepository
	}

	// MenuRepoFactory provides access to the menu repository within a transaction.
	MenuRepoFactory interface {
		MenuRepository() ports.MenuRepository
	}

	// LineUoW manages transactions for line-only operations.
	// Used by commands that touch order lines and nothing else.
	LineUoW interface {
		TxManager
		LineRepoFactory
	}

	// LineUoWFactory creates new line unit of work instances.
	LineUoWFactory interface {
		Create() LineUoW
	}

	// TableUoW provides table access for commands that never write.
	TableUoW interface {
		TxManager
		TableRepoFactory
	}

	// TableUoWFactory creates new table unit of work instances.
	TableUoWFactory interface {
		Create() TableUoW
	}

	// UoW manages transactions spanning lines, tables, and the catalog.
	// Used by commands that validate foreign references while writing lines.
	UoW interface {
		TxManager
		LineRepoFactory
		TableRepoFactory
		MenuRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
