package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrGetAllTablesQueryIsNotConstructed = errors.New(
	"GetAllTablesQuery must be created via NewGetAllTablesQuery constructor",
)

// GetAllTablesQuery retrieves every provisioned table. Backs the staff
// station list, which shows each table with its access token so staff can
// hand out or re-print table links.
type GetAllTablesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllTablesQuery creates a query for the provisioned tables.
func NewGetAllTablesQuery() GetAllTablesQuery {
	return GetAllTablesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllTablesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllTablesQueryIsNotConstructed)
}

// TableQueryResponse represents one provisioned table.
type TableQueryResponse struct {
	ID     kernel.UUID
	Number int
	Token  string
}
