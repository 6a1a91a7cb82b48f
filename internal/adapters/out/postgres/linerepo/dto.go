// Package linerepo provides data transfer objects and mapping functions for
// order line persistence. Handles the conversion between the line domain
// model and its relational representation.
package linerepo

import (
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"

	"github.com/google/uuid"
)

// OrderLineDTO represents the database structure for persisting order
// lines. Indexed by table and status for the board and cleanup queries.
type OrderLineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableID  uuid.UUID `gorm:"type:uuid;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;index"`
	Quantity int
	Status   int       `gorm:"index"`
	PlacedAt time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts a line domain entity to its database representation.
func fromDomain(l *line.OrderLine) OrderLineDTO {
	return OrderLineDTO{
		ID:       l.ID().Bytes(),
		TableID:  l.TableID().Bytes(),
		ItemID:   l.ItemID().Bytes(),
		Quantity: l.Quantity(),
		Status:   int(l.Status()),
		PlacedAt: l.PlacedAt(),
	}
}

// toDomain converts a database DTO back into a line domain entity,
// revalidating every invariant on the way in.
func toDomain(dto OrderLineDTO) (*line.OrderLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}

	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	return line.RestoreOrderLine(id, tableID, itemID, dto.Quantity, line.Status(dto.Status), dto.PlacedAt)
}
