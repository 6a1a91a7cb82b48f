package ports

import (
	"context"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
)

// MenuRepository defines read access to the catalog. The catalog is owned by
// the external menu collaborator; this service validates item references and
// denormalizes names and prices onto order displays, nothing more.
type MenuRepository interface {
	// Add persists a catalog item. Used only at seed time.
	Add(ctx context.Context, item *menu.MenuItem) error

	// Get retrieves a catalog item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.MenuItem, error)

	// GetAll retrieves the full catalog, ordered by category then name.
	GetAll(ctx context.Context) ([]*menu.MenuItem, error)
}
