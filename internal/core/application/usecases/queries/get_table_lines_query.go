package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrGetTableLinesQueryIsNotConstructed = errors.New(
	"GetTableLinesQuery must be created via NewGetTableLinesQuery constructor",
)

// GetTableLinesQuery retrieves every order line belonging to one table.
// Backs the diner view, which only ever shows its own table's order.
type GetTableLinesQuery struct {
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTableLinesQuery creates a query for one table's lines.
func NewGetTableLinesQuery(tableID kernel.UUID) (GetTableLinesQuery, error) {
	if err := tableID.Validate(); err != nil {
		return GetTableLinesQuery{}, err
	}

	return GetTableLinesQuery{
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTableLinesQuery) Validate() error {
	return q.guard.Validate(ErrGetTableLinesQueryIsNotConstructed)
}

// TableID returns the table whose lines are requested.
func (q GetTableLinesQuery) TableID() kernel.UUID {
	return q.tableID
}
