// Package menu provides the MenuItem reference: catalog data owned by the
// external menu collaborator. The lifecycle engine treats it as read-only
// foreign data, needed to validate placed items and to denormalize names and
// prices onto order displays. Catalog management (create, edit, categorize,
// image upload) happens outside this service.
package menu

import (
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// ErrMenuItemIsNotConstructed is returned when a MenuItem instance was not
// created through the NewMenuItem factory method.
var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem constructor")

// MenuItem is one orderable catalog entry.
type MenuItem struct {
	id            kernel.UUID
	name          string
	description   string
	price         kernel.Price
	category      string
	isConstructed bool
}

// NewMenuItem creates a MenuItem with validation. Name is required;
// description and category may be empty.
func NewMenuItem(
	id kernel.UUID,
	name, description string,
	price kernel.Price,
	category string,
) (*MenuItem, error) {
	item := &MenuItem{
		description:   description,
		category:      category,
		price:         price,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the MenuItem instance was properly constructed.
func (m *MenuItem) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMenuItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (m *MenuItem) ID() kernel.UUID {
	return m.id
}

// Name returns the item's display name.
func (m *MenuItem) Name() string {
	return m.name
}

// Description returns the item's description, possibly empty.
func (m *MenuItem) Description() string {
	return m.description
}

// Price returns the item's price.
func (m *MenuItem) Price() kernel.Price {
	return m.price
}

// Category returns the item's category label, possibly empty.
func (m *MenuItem) Category() string {
	return m.category
}

func (m *MenuItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *MenuItem) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}
