package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for tables.
// Tables are provisioned once and read-only afterwards.
type TableRepository interface {
	// Add persists a new table. Used only at provisioning/seed time.
	Add(ctx context.Context, aggregate *table.Table) error

	// Get retrieves a table by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetByToken resolves a scanned token to its table.
	GetByToken(ctx context.Context, token kernel.Token) (*table.Table, error)

	// GetAll retrieves every provisioned table, ordered by table number.
	GetAll(ctx context.Context) ([]*table.Table, error)
}
