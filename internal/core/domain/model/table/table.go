// Package table provides the Table entity: the physical dining table a QR
// code resolves to. Tables are created at provisioning time and are immutable
// afterwards; the engine only ever reads them to validate order placement and
// to resolve scanned tokens.
package table

import (
	"errors"
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrTableIsNotConstructed is returned when a Table instance was not created
// through the NewTable factory method.
var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

// Table represents one dining table. Identity is the UUID; Number is the
// human-facing label printed on the table (unique per restaurant); Token is
// the opaque credential embedded in the table's QR code.
type Table struct {
	id            kernel.UUID
	number        int
	token         kernel.Token
	isConstructed bool
}

// NewTable creates a Table with validation. Number must be positive and the
// token must be a constructed kernel.Token.
func NewTable(id kernel.UUID, number int, token kernel.Token) (*Table, error) {
	t := &Table{
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setToken(token),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate ensures the Table instance was properly constructed.
func (t *Table) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// IsEqual compares two tables by their unique identifiers.
func (t *Table) IsEqual(other *Table) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the table's unique identifier.
func (t *Table) ID() kernel.UUID {
	return t.id
}

// Number returns the human-facing table number.
func (t *Table) Number() int {
	return t.number
}

// Token returns the table's scan credential.
func (t *Table) Token() kernel.Token {
	return t.token
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number < 1 {
		return errs.NewValueIsInvalidErrorWithCause("table number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	t.number = number
	return nil
}

func (t *Table) setToken(token kernel.Token) error {
	if err := token.Validate(); err != nil {
		return err
	}
	t.token = token
	return nil
}
