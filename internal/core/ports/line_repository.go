// Package ports defines repository and capability interfaces for the
// tableside domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
)

// LineRepository defines the persistence contract for order line aggregates.
type LineRepository interface {
	// Add persists a new order line.
	// Within a transaction, adds of a batch commit or roll back together.
	Add(ctx context.Context, aggregate *line.OrderLine) error

	// Update persists changes to an existing line.
	Update(ctx context.Context, aggregate *line.OrderLine) error

	// Get retrieves a line by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*line.OrderLine, error)

	// GetForUpdate retrieves a line and takes a row-level lock on it, so a
	// concurrent status change on the same line waits for the current
	// transaction to commit and is then evaluated against the committed
	// status. Must be called inside an open transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*line.OrderLine, error)

	// GetAllForTable retrieves every line belonging to a table.
	GetAllForTable(ctx context.Context, tableID kernel.UUID) ([]*line.OrderLine, error)

	// DeleteByID removes one line. Returns the number of rows removed
	// (0 when the line does not exist).
	DeleteByID(ctx context.Context, id kernel.UUID) (int64, error)

	// DeleteByStatuses removes every line whose status is in the given set,
	// as one statement. Returns the number of rows removed.
	DeleteByStatuses(ctx context.Context, statuses []line.Status) (int64, error)

	// DeleteAll removes every line. Irreversible; callers gate it behind
	// explicit confirmation. Returns the number of rows removed.
	DeleteAll(ctx context.Context) (int64, error)
}
