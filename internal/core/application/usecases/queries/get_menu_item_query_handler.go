package queries

import (
	"context"
	"database/sql"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMenuItemQueryHandler reads one catalog item from the database.
type GetMenuItemQueryHandler struct {
	db *gorm.DB
}

// NewGetMenuItemQueryHandler creates a handler for single-item catalog queries.
func NewGetMenuItemQueryHandler(db *gorm.DB) GetMenuItemQueryHandler {
	return GetMenuItemQueryHandler{db: db}
}

// Handle executes the query. Fails with ObjectNotFoundError when no item
// carries the requested id.
func (h GetMenuItemQueryHandler) Handle(
	ctx context.Context,
	query GetMenuItemQuery,
) (MenuItemQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return MenuItemQueryResponse{}, err
	}

	var (
		resp MenuItemQueryResponse
		id   uuid.UUID
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			description,
			price,
			category
		FROM menu_items
		WHERE id = ?
	`, query.ItemID().Bytes()).Row()

	err := row.Scan(&id, &resp.Name, &resp.Description, &resp.Price, &resp.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return MenuItemQueryResponse{}, errs.NewObjectNotFoundError("itemId", query.ItemID().String())
	}
	if err != nil {
		return MenuItemQueryResponse{}, err
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return MenuItemQueryResponse{}, err
	}
	resp.ID = itemID

	return resp, nil
}
