// Package tablerepo provides data transfer objects and mapping functions
// for table persistence.
package tablerepo

import (
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// TableDTO represents the database structure for persisting tables.
// Number and token are both unique; the token is what diners resolve.
type TableDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number int       `gorm:"uniqueIndex"`
	Token  string    `gorm:"size:10;uniqueIndex"`
}

// TableName specifies the database table name for tables.
func (TableDTO) TableName() string {
	return "tables"
}

// fromDomain converts a table domain entity to its database representation.
func fromDomain(t *table.Table) TableDTO {
	return TableDTO{
		ID:     t.ID().Bytes(),
		Number: t.Number(),
		Token:  t.Token().String(),
	}
}

// toDomain converts a database DTO back into a table domain entity.
func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	token, err := kernel.TokenFromString(dto.Token)
	if err != nil {
		return nil, err
	}

	return table.NewTable(id, dto.Number, token)
}
