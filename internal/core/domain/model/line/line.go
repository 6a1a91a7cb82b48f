package line

import (
	"errors"
	"fmt"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

var (
	// ErrOrderLineIsNotConstructed is returned when an OrderLine instance was not
	// created through the NewOrderLine or RestoreOrderLine factory methods.
	ErrOrderLineIsNotConstructed = errors.New(
		"OrderLine must be created via NewOrderLine or RestoreOrderLine constructor",
	)
)

// OrderLine is the unit the lifecycle engine manages: one item-and-quantity
// entry belonging to a table's order, independently status-tracked.
//
// OrderLine follows these invariants:
//   - Must have valid unique, table, and item identifiers
//   - Quantity must be at least 1
//   - Status moves only along the edges that Status defines
//   - placedAt is set once at creation and never mutated
//
// Lines placed together in one request share a placedAt instant; there is no
// separate aggregate grouping them beyond that.
type OrderLine struct {
	// id is the unique identifier for the line
	id kernel.UUID

	// tableID identifies the table the line was placed from
	tableID kernel.UUID

	// itemID references the catalog item being ordered
	itemID kernel.UUID

	// quantity is the number of units ordered (at least 1)
	quantity int

	// status is the current state in the line lifecycle
	status Status

	// placedAt is the creation instant, shared across a batch
	placedAt time.Time

	// isConstructed ensures the line was created via a constructor
	isConstructed bool
}

// NewOrderLine creates a line in Pending status. This is the only way a line
// enters the system; all invariants are validated here.
func NewOrderLine(
	id, tableID, itemID kernel.UUID,
	quantity int,
	placedAt time.Time,
) (*OrderLine, error) {
	l := &OrderLine{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setTableID(tableID),
		l.setItemID(itemID),
		l.setQuantity(quantity),
		l.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreOrderLine reconstructs a line from persistence, including its
// current status. Used by repositories; validates the same invariants as
// NewOrderLine plus the stored status value.
func RestoreOrderLine(
	id, tableID, itemID kernel.UUID,
	quantity int,
	status Status,
	placedAt time.Time,
) (*OrderLine, error) {
	l := &OrderLine{
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setTableID(tableID),
		l.setItemID(itemID),
		l.setQuantity(quantity),
		l.setStatus(status),
		l.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the OrderLine instance was properly constructed.
func (l *OrderLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrOrderLineIsNotConstructed
	}
	return nil
}

// IsEqual compares two lines by their unique identifiers.
func (l *OrderLine) IsEqual(other *OrderLine) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the line's unique identifier.
func (l *OrderLine) ID() kernel.UUID {
	return l.id
}

// TableID returns the identifier of the owning table.
func (l *OrderLine) TableID() kernel.UUID {
	return l.tableID
}

// ItemID returns the identifier of the referenced catalog item.
func (l *OrderLine) ItemID() kernel.UUID {
	return l.itemID
}

// Quantity returns the number of units ordered.
func (l *OrderLine) Quantity() int {
	return l.quantity
}

// Status returns the current status of the line.
func (l *OrderLine) Status() Status {
	return l.status
}

// PlacedAt returns the creation instant of the line.
func (l *OrderLine) PlacedAt() time.Time {
	return l.placedAt
}

// ChangeStatus moves the line to the requested status.
//
// Requesting the status the line already holds is a legal no-op and reports
// changed=false, so retried requests never produce duplicate transitions.
// An illegal move returns an IllegalTransitionError carrying the current
// status and the allowed-next set, with the line left untouched.
func (l *OrderLine) ChangeStatus(next Status) (changed bool, err error) {
	if err := l.Validate(); err != nil {
		return false, err
	}

	if next == l.status {
		if err := next.Validate(); err != nil {
			return false, err
		}
		return false, nil
	}

	newStatus, err := l.status.TransitionTo(next)
	if err != nil {
		return false, err
	}

	l.status = newStatus
	return true, nil
}

func (l *OrderLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *OrderLine) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return err
	}
	l.tableID = tableID
	return nil
}

func (l *OrderLine) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	l.itemID = itemID
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *OrderLine) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}

func (l *OrderLine) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	l.placedAt = placedAt
	return nil
}
