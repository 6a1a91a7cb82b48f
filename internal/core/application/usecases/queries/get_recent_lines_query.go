// Package queries contains read operations for staff views and diner clients.
// Implements the Query pattern for the read side of the CQRS architecture.
// Handlers bypass the domain model and read denormalized rows straight from
// the database, joining catalog data into the line shape the views render.
package queries

import (
	"errors"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/pkg/guard"
)

var ErrGetRecentLinesQueryIsNotConstructed = errors.New(
	"GetRecentLinesQuery must be created via NewGetRecentLinesQuery constructor",
)

// GetRecentLinesQuery retrieves the most recent order lines across all
// tables. Backs the staff board's authoritative snapshot, so it is also the
// state every connected view converges to on reconnect.
//
// Example:
//
//	query := NewGetRecentLinesQuery()
//	handler := NewGetRecentLinesQueryHandler(db)
//
//	lines, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load the board: %w", err)
//	}
type GetRecentLinesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetRecentLinesQuery creates a query for the latest order lines.
// This is a parameterless query; the result size is capped by the handler.
func NewGetRecentLinesQuery() GetRecentLinesQuery {
	return GetRecentLinesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetRecentLinesQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentLinesQueryIsNotConstructed)
}

// LineQueryResponse represents one order line as staff views consume it,
// with the catalog item's name and price joined in.
type LineQueryResponse struct {
	ID       kernel.UUID
	TableID  kernel.UUID
	ItemID   kernel.UUID
	Name     string
	Price    float64
	Quantity int
	Status   line.Status
	PlacedAt time.Time
}
