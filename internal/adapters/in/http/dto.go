package http

import (
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/events"
)

// placeOrderRequest is the wire shape of POST /orders.
type placeOrderRequest struct {
	TableID string                  `json:"table_id"`
	Items   []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// advanceLineRequest is the wire shape of PATCH /orders/:line_id.
type advanceLineRequest struct {
	Status string `json:"status"`
}

// callWaiterRequest is the wire shape of POST /tables/call-waiter.
type callWaiterRequest struct {
	TableID string `json:"table_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// conflictResponse is returned on an illegal status transition so clients
// can show the staff what moves remain possible.
type conflictResponse struct {
	Error       string   `json:"error"`
	Current     string   `json:"current"`
	AllowedNext []string `json:"allowed_next"`
}

type cleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

type removeLineResponse struct {
	DeletedID string `json:"deleted_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type menuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type tableResponse struct {
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
	Token       string `json:"token"`
}

type resolveTableResponse struct {
	TableID     string `json:"table_id"`
	TableNumber int    `json:"table_number"`
}

// topItemResponse ranks one catalog item by quantity ordered, matching the
// shape analytics dashboards consume.
type topItemResponse struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	TotalQty int    `json:"total_qty"`
}

// lineToSnapshot maps a read-side line row onto the snapshot shape shared
// with command results and push events, so every surface renders lines
// identically.
func lineToSnapshot(l queries.LineQueryResponse) events.LineSnapshot {
	return events.LineSnapshot{
		LineID:   l.ID.String(),
		TableID:  l.TableID.String(),
		ItemID:   l.ItemID.String(),
		Name:     l.Name,
		Price:    l.Price,
		Quantity: l.Quantity,
		Status:   l.Status.String(),
		PlacedAt: l.PlacedAt,
	}
}

func menuItemToResponse(item queries.MenuItemQueryResponse) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
	}
}
