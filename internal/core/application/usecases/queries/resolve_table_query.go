package queries

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/guard"
)

var ErrResolveTableQueryIsNotConstructed = errors.New(
	"ResolveTableQuery must be created via NewResolveTableQuery constructor",
)

// ResolveTableQuery exchanges a table's access token for its identity.
// This is the first call a diner client makes after scanning the QR code
// on a table; everything after uses the resolved table id.
type ResolveTableQuery struct {
	token kernel.Token

	guard guard.ConstructorGuard
}

// NewResolveTableQuery creates a query to resolve a table token.
func NewResolveTableQuery(token kernel.Token) (ResolveTableQuery, error) {
	if err := token.Validate(); err != nil {
		return ResolveTableQuery{}, err
	}

	return ResolveTableQuery{
		token: token,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveTableQuery) Validate() error {
	return q.guard.Validate(ErrResolveTableQueryIsNotConstructed)
}

// Token returns the access token being resolved.
func (q ResolveTableQuery) Token() kernel.Token {
	return q.token
}

// ResolveTableQueryResponse identifies the table behind a token. The token
// itself is never echoed back.
type ResolveTableQueryResponse struct {
	ID     kernel.UUID
	Number int
}
