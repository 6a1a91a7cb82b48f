// Package http exposes the order lifecycle over REST using echo.
// It translates wire requests into commands and queries, and application
// errors into status codes; no business rules live here.
package http

import (
	"net/http"
	"strconv"
	"strings"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler   commands.PlaceOrderCommandHandler
	advanceLineHandler  commands.AdvanceLineCommandHandler
	cleanupLinesHandler commands.CleanupLinesCommandHandler
	removeLineHandler   commands.RemoveLineCommandHandler
	callWaiterHandler   commands.CallWaiterCommandHandler

	// Query handlers
	recentLinesHandler  queries.GetRecentLinesQueryHandler
	tableLinesHandler   queries.GetTableLinesQueryHandler
	menuHandler         queries.GetMenuQueryHandler
	menuItemHandler     queries.GetMenuItemQueryHandler
	allTablesHandler    queries.GetAllTablesQueryHandler
	resolveTableHandler queries.ResolveTableQueryHandler
	topItemsHandler     queries.GetTopItemsQueryHandler
}

// defaultTopItemsWindowDays is the trailing window used when the caller
// gives no usable days parameter.
const defaultTopItemsWindowDays = 365

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	advanceLineHandler commands.AdvanceLineCommandHandler,
	cleanupLinesHandler commands.CleanupLinesCommandHandler,
	removeLineHandler commands.RemoveLineCommandHandler,
	callWaiterHandler commands.CallWaiterCommandHandler,
	recentLinesHandler queries.GetRecentLinesQueryHandler,
	tableLinesHandler queries.GetTableLinesQueryHandler,
	menuHandler queries.GetMenuQueryHandler,
	menuItemHandler queries.GetMenuItemQueryHandler,
	allTablesHandler queries.GetAllTablesQueryHandler,
	resolveTableHandler queries.ResolveTableQueryHandler,
	topItemsHandler queries.GetTopItemsQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:   placeOrderHandler,
		advanceLineHandler:  advanceLineHandler,
		cleanupLinesHandler: cleanupLinesHandler,
		removeLineHandler:   removeLineHandler,
		callWaiterHandler:   callWaiterHandler,
		recentLinesHandler:  recentLinesHandler,
		tableLinesHandler:   tableLinesHandler,
		menuHandler:         menuHandler,
		menuItemHandler:     menuItemHandler,
		allTablesHandler:    allTablesHandler,
		resolveTableHandler: resolveTableHandler,
		topItemsHandler:     topItemsHandler,
	}
}

// RegisterRoutes attaches every REST route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.PlaceOrder)
	e.GET("/orders", s.GetOrders)
	e.PATCH("/orders/:line_id", s.AdvanceLine)
	e.DELETE("/orders/cleanup", s.CleanupLines)
	e.DELETE("/orders/:line_id", s.RemoveLine)

	e.GET("/menu", s.GetMenu)
	e.GET("/menu/:item_id", s.GetMenuItem)

	e.GET("/tables", s.GetTables)
	e.GET("/tables/resolve", s.ResolveTable)
	e.POST("/tables/call-waiter", s.CallWaiter)

	e.GET("/analytics/top-items", s.TopItems)

	e.GET("/health", s.Health)
}

// PlaceOrder handles POST /orders - places a batch of lines for one table.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req placeOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	entries := make([]commands.OrderEntry, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, idErr := kernel.UUIDFromString(item.ItemID)
		if idErr != nil {
			return writeBadRequest(ctx, idErr)
		}

		entry, entryErr := commands.NewOrderEntry(itemID, item.Quantity)
		if entryErr != nil {
			return writeBadRequest(ctx, entryErr)
		}
		entries = append(entries, entry)
	}

	cmd, err := commands.NewPlaceOrderCommand(tableID, entries)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	created, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, created)
}

// GetOrders handles GET /orders - the staff board snapshot, or one table's
// lines when table_id is given.
func (s *Server) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rawTableID := ctx.QueryParam("table_id")
	var (
		lines []queries.LineQueryResponse
		err   error
	)

	if rawTableID == "" {
		lines, err = s.recentLinesHandler.Handle(reqCtx, queries.NewGetRecentLinesQuery())
	} else {
		tableID, idErr := kernel.UUIDFromString(rawTableID)
		if idErr != nil {
			return writeBadRequest(ctx, idErr)
		}

		var query queries.GetTableLinesQuery
		query, err = queries.NewGetTableLinesQuery(tableID)
		if err != nil {
			return writeBadRequest(ctx, err)
		}
		lines, err = s.tableLinesHandler.Handle(reqCtx, query)
	}
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]events.LineSnapshot, 0, len(lines))
	for _, l := range lines {
		response = append(response, lineToSnapshot(l))
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceLine handles PATCH /orders/:line_id - moves one line to a new status.
func (s *Server) AdvanceLine(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("line_id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	var req advanceLineRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	status, err := line.StatusFromString(req.Status)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewAdvanceLineCommand(lineID, status)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	updated, err := s.advanceLineHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updated)
}

// CleanupLines handles DELETE /orders/cleanup - bulk deletion by status set
// (statuses=served,cancelled) or everything (all=true).
func (s *Server) CleanupLines(ctx echo.Context) error {
	all := ctx.QueryParam("all") == "true"

	var statuses []line.Status
	if raw := ctx.QueryParam("statuses"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			status, err := line.StatusFromString(strings.TrimSpace(name))
			if err != nil {
				return writeBadRequest(ctx, err)
			}
			statuses = append(statuses, status)
		}
	}

	cmd, err := commands.NewCleanupLinesCommand(statuses, all)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	deleted, err := s.cleanupLinesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cleanupResponse{Deleted: deleted})
}

// RemoveLine handles DELETE /orders/:line_id - deletes a single line.
func (s *Server) RemoveLine(ctx echo.Context) error {
	lineID, err := kernel.UUIDFromString(ctx.Param("line_id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewRemoveLineCommand(lineID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err = s.removeLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, removeLineResponse{DeletedID: lineID.String()})
}

// GetMenu handles GET /menu - the full catalog.
func (s *Server) GetMenu(ctx echo.Context) error {
	items, err := s.menuHandler.Handle(ctx.Request().Context(), queries.NewGetMenuQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, menuItemToResponse(item))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetMenuItem handles GET /menu/:item_id - one catalog item.
func (s *Server) GetMenuItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewGetMenuItemQuery(itemID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	item, err := s.menuItemHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, menuItemToResponse(item))
}

// GetTables handles GET /tables - the staff station list with tokens.
func (s *Server) GetTables(ctx echo.Context) error {
	tables, err := s.allTablesHandler.Handle(ctx.Request().Context(), queries.NewGetAllTablesQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		response = append(response, tableResponse{
			TableID:     t.ID.String(),
			TableNumber: t.Number,
			Token:       t.Token,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ResolveTable handles GET /tables/resolve - exchanges a token for the
// table's identity.
func (s *Server) ResolveTable(ctx echo.Context) error {
	token, err := kernel.TokenFromString(ctx.QueryParam("token"))
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	query, err := queries.NewResolveTableQuery(token)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	resolved, err := s.resolveTableHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resolveTableResponse{
		TableID:     resolved.ID.String(),
		TableNumber: resolved.Number,
	})
}

// CallWaiter handles POST /tables/call-waiter - notifies staff for a table.
func (s *Server) CallWaiter(ctx echo.Context) error {
	var req callWaiterRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	cmd, err := commands.NewCallWaiterCommand(tableID)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	if err = s.callWaiterHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, messageResponse{Message: "waiter called"})
}

// TopItems handles GET /analytics/top-items - the best-selling catalog
// items over a trailing day window (?days=N, default 365). An unusable days
// value falls back to the default rather than failing.
func (s *Server) TopItems(ctx echo.Context) error {
	days := defaultTopItemsWindowDays
	if raw := ctx.QueryParam("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 1 {
			days = parsed
		}
	}

	query, err := queries.NewGetTopItemsQuery(days)
	if err != nil {
		return writeBadRequest(ctx, err)
	}

	items, err := s.topItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]topItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, topItemResponse{
			ItemID:   item.ItemID.String(),
			Name:     item.Name,
			TotalQty: item.TotalQuantity,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
