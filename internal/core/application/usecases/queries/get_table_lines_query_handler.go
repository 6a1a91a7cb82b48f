package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetTableLinesQueryHandler reads one table's order lines from the database.
type GetTableLinesQueryHandler struct {
	db *gorm.DB
}

// NewGetTableLinesQueryHandler creates a handler for per-table line queries.
func NewGetTableLinesQueryHandler(db *gorm.DB) GetTableLinesQueryHandler {
	return GetTableLinesQueryHandler{db: db}
}

// Handle executes the query and returns the table's lines, newest first,
// with item names and prices joined from the catalog. An unknown table
// yields an empty result, not an error.
func (h GetTableLinesQueryHandler) Handle(
	ctx context.Context,
	query GetTableLinesQuery,
) ([]LineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.table_id,
			l.item_id,
			m.name,
			m.price,
			l.quantity,
			l.status,
			l.placed_at
		FROM order_lines l
		JOIN menu_items m ON m.id = l.item_id
		WHERE l.table_id = ?
		ORDER BY l.placed_at DESC, l.id DESC
	`, query.TableID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLines(rows)
}
