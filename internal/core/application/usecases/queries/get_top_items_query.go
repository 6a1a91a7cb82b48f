package queries

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/guard"
)

var ErrGetTopItemsQueryIsNotConstructed = errors.New(
	"GetTopItemsQuery must be created via NewGetTopItemsQuery constructor",
)

// GetTopItemsQuery retrieves the best-selling catalog items over a trailing
// window of days, ranked by total quantity ordered. Backs the analytics
// view; cleanup deletes lines, so the ranking only reflects lines still on
// the board.
type GetTopItemsQuery struct {
	days int

	guard guard.ConstructorGuard
}

// NewGetTopItemsQuery creates a query for the best sellers of the last
// days days.
func NewGetTopItemsQuery(days int) (GetTopItemsQuery, error) {
	if days < 1 {
		return GetTopItemsQuery{}, errs.NewValueIsInvalidErrorWithCause("days",
			fmt.Errorf("window must be at least one day, got %d", days))
	}

	return GetTopItemsQuery{
		days:  days,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTopItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetTopItemsQueryIsNotConstructed)
}

// Days returns the trailing window length in days.
func (q GetTopItemsQuery) Days() int {
	return q.days
}

// TopItemQueryResponse is one entry of the best-sellers ranking.
type TopItemQueryResponse struct {
	ItemID        kernel.UUID
	Name          string
	TotalQuantity int
}
