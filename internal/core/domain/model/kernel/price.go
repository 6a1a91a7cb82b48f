package kernel

import (
	"fmt"

	"tableside/internal/pkg/errs"
)

// Price is a value object representing a non-negative currency amount.
// It is carried from the menu catalog onto order lines for display and is
// never computed with inside this service.
//
// A zero price is legal (complimentary items); a negative one is not.
type Price struct {
	amount float64
}

// NewPrice creates a Price, rejecting negative amounts.
func NewPrice(amount float64) (Price, error) {
	if amount < 0 {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is negative", amount))
	}
	return Price{amount: amount}, nil
}

// Amount returns the numeric value of the price.
func (p Price) Amount() float64 {
	return p.amount
}

// IsEqual compares two prices for equality.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}
