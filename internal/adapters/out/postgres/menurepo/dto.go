// Package menurepo provides data transfer objects and mapping functions
// for catalog persistence. The catalog is owned by another system; this
// repository holds a read-mostly replica that placement validates against.
package menurepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"

	"github.com/google/uuid"
)

// MenuItemDTO represents the database structure for persisting catalog items.
type MenuItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Price       float64
	Category    string `gorm:"index"`
}

// TableName specifies the database table name for catalog items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// fromDomain converts a catalog item domain entity to its database representation.
func fromDomain(item *menu.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          item.ID().Bytes(),
		Name:        item.Name(),
		Description: item.Description(),
		Price:       item.Price().Amount(),
		Category:    item.Category(),
	}
}

// toDomain converts a database DTO back into a catalog item domain entity.
func toDomain(dto MenuItemDTO) (*menu.MenuItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.Price)
	if err != nil {
		return nil, err
	}

	return menu.NewMenuItem(id, dto.Name, dto.Description, price, dto.Category)
}
