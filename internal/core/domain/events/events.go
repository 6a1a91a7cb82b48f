// Package events defines the payloads that cross the in-process event bus
// after a change has been committed to the store. Delivery is at-most-once
// and best-effort; observers that miss an event converge on the next
// authoritative snapshot.
package events

import "time"

// Event kinds as they appear on the wire.
const (
	KindOrderCreated      = "order.created"
	KindLineStatusChanged = "order.statusChanged"
	KindWaiterCalled      = "waiter.called"
)

// Event is implemented by every payload published on the bus.
type Event interface {
	Kind() string
}

// LineSnapshot is the denormalized view of one order line carried inside
// events and snapshots: the line's own fields plus the catalog item's name
// and price for display.
type LineSnapshot struct {
	LineID   string    `json:"line_id"`
	TableID  string    `json:"table_id"`
	ItemID   string    `json:"item_id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	Status   string    `json:"status"`
	PlacedAt time.Time `json:"placed_at"`
}

// OrderCreated announces a committed order placement: every line of the
// batch, with assigned ids.
type OrderCreated struct {
	TableID string         `json:"table_id"`
	Lines   []LineSnapshot `json:"lines"`
}

func (OrderCreated) Kind() string { return KindOrderCreated }

// LineStatusChanged announces one committed status transition.
type LineStatusChanged struct {
	LineID  string `json:"line_id"`
	TableID string `json:"table_id"`
	Status  string `json:"status"`
}

func (LineStatusChanged) Kind() string { return KindLineStatusChanged }

// WaiterCalled announces that a diner pressed the call-waiter button.
// Nothing is persisted; staff views surface it transiently.
type WaiterCalled struct {
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
}

func (WaiterCalled) Kind() string { return KindWaiterCalled }
