package queries

import (
	"context"
	"database/sql"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveTableQueryHandler resolves table tokens against the database.
type ResolveTableQueryHandler struct {
	db *gorm.DB
}

// NewResolveTableQueryHandler creates a handler for token resolution.
func NewResolveTableQueryHandler(db *gorm.DB) ResolveTableQueryHandler {
	return ResolveTableQueryHandler{db: db}
}

// Handle executes the query. Fails with ObjectNotFoundError when no table
// carries the token; the error does not reveal whether the token was ever
// valid.
func (h ResolveTableQueryHandler) Handle(
	ctx context.Context,
	query ResolveTableQuery,
) (ResolveTableQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveTableQueryResponse{}, err
	}

	var (
		resp ResolveTableQueryResponse
		id   uuid.UUID
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number
		FROM tables
		WHERE token = ?
	`, query.Token().String()).Row()

	err := row.Scan(&id, &resp.Number)
	if errors.Is(err, sql.ErrNoRows) {
		return ResolveTableQueryResponse{}, errs.NewObjectNotFoundError("token", "table token")
	}
	if err != nil {
		return ResolveTableQueryResponse{}, err
	}

	tableID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return ResolveTableQueryResponse{}, err
	}
	resp.ID = tableID

	return resp, nil
}
