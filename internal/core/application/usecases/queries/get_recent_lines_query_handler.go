package queries

import (
	"context"
	"database/sql"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recentLinesLimit caps the snapshot size so a long-running venue does not
// push its entire history at every reconnecting view.
const recentLinesLimit = 200

// GetRecentLinesQueryHandler reads the latest order lines from the database.
// Newest lines come first; the line's placement instant breaks ties by id so
// batch-placed lines keep a stable order.
type GetRecentLinesQueryHandler struct {
	db *gorm.DB
}

// NewGetRecentLinesQueryHandler creates a handler for recent line queries.
// Requires a GORM database connection for query execution.
func NewGetRecentLinesQueryHandler(db *gorm.DB) GetRecentLinesQueryHandler {
	return GetRecentLinesQueryHandler{db: db}
}

// Handle executes the query and returns at most 200 lines, newest first,
// with item names and prices joined from the catalog.
func (h GetRecentLinesQueryHandler) Handle(
	ctx context.Context,
	query GetRecentLinesQuery,
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
		ORDER BY l.placed_at DESC, l.id DESC
		LIMIT ?
	`, recentLinesLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLines(rows)
}

// scanLines converts joined line rows into responses. Shared by every query
// that returns the staff view line shape.
func scanLines(rows *sql.Rows) ([]LineQueryResponse, error) {
	lines := make([]LineQueryResponse, 0)

	for rows.Next() {
		var (
			resp                LineQueryResponse
			id, tableID, itemID uuid.UUID
			status              int
		)

		if err := rows.Scan(
			&id,
			&tableID,
			&itemID,
			&resp.Name,
			&resp.Price,
			&resp.Quantity,
			&status,
			&resp.PlacedAt,
		); err != nil {
			return nil, err
		}

		lineID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		lineTableID, err := kernel.UUIDFromBytes(tableID[:])
		if err != nil {
			return nil, err
		}
		lineItemID, err := kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}

		resp.ID = lineID
		resp.TableID = lineTableID
		resp.ItemID = lineItemID
		resp.Status = line.Status(status)
		lines = append(lines, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
