package queries

import (
	"context"
	"time"

	"tableside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// topItemsLimit caps the ranking length.
const topItemsLimit = 10

// GetTopItemsQueryHandler reads the best-sellers ranking from the database.
type GetTopItemsQueryHandler struct {
	db *gorm.DB
}

// NewGetTopItemsQueryHandler creates a handler for best-seller queries.
func NewGetTopItemsQueryHandler(db *gorm.DB) GetTopItemsQueryHandler {
	return GetTopItemsQueryHandler{db: db}
}

// Handle executes the query and returns at most 10 items, ordered by total
// quantity descending, counting only lines placed inside the window.
func (h GetTopItemsQueryHandler) Handle(
	ctx context.Context,
	query GetTopItemsQuery,
) ([]TopItemQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -query.Days())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.item_id,
			m.name,
			SUM(l.quantity) AS total_quantity
		FROM order_lines l
		JOIN menu_items m ON m.id = l.item_id
		WHERE l.placed_at >= ?
		GROUP BY l.item_id, m.name
		ORDER BY total_quantity DESC
		LIMIT ?
	`, since, topItemsLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]TopItemQueryResponse, 0)

	for rows.Next() {
		var (
			resp TopItemQueryResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &resp.Name, &resp.TotalQuantity); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ItemID = itemID
		items = append(items, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
