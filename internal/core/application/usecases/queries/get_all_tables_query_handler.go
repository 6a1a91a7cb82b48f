package queries

import (
	"context"

	"tableside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllTablesQueryHandler reads the provisioned tables from the database.
type GetAllTablesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllTablesQueryHandler creates a handler for station list queries.
func NewGetAllTablesQueryHandler(db *gorm.DB) GetAllTablesQueryHandler {
	return GetAllTablesQueryHandler{db: db}
}

// Handle executes the query and returns every table ordered by number.
func (h GetAllTablesQueryHandler) Handle(
	ctx context.Context,
	query GetAllTablesQuery,
) ([]TableQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			token
		FROM tables
		ORDER BY number
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]TableQueryResponse, 0)

	for rows.Next() {
		var (
			resp TableQueryResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &resp.Number, &resp.Token); err != nil {
			return nil, err
		}

		tableID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = tableID
		tables = append(tables, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
