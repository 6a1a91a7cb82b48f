package postgres

import (
	"context"

	"tableside/internal/adapters/out/postgres/linerepo"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/adapters/out/postgres/tablerepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/table"

	"gorm.io/gorm"
)

// seedMenuItem is one catalog entry provisioned on first start.
type seedMenuItem struct {
	name        string
	description string
	price       float64
	category    string
}

// sampleMenu is the starter catalog for a fresh database. A real venue
// replaces it through whatever owns the catalog.
var sampleMenu = []seedMenuItem{
	{"Margherita Pizza", "Classic pizza with tomato sauce, mozzarella, and basil", 8.99, "Main Course"},
	{"Caesar Salad", "Crisp romaine lettuce with Caesar dressing, croutons, and Parmesan cheese", 6.49, "Appetizer"},
	{"Spaghetti Carbonara", "Pasta with eggs, cheese, pancetta, and pepper", 10.99, "Main Course"},
	{"Tiramisu", "Coffee-flavored Italian dessert with mascarpone cheese and cocoa", 5.99, "Dessert"},
}

// Migrate creates or updates the schema for every persisted type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tablerepo.TableDTO{},
		&menurepo.MenuItemDTO{},
		&linerepo.OrderLineDTO{},
	)
}

// Seed provisions tables 1..tableCount with fresh access tokens and loads
// the starter catalog. Idempotent: existing tables keep their numbers and
// tokens, and the catalog is only loaded into an empty database.
func Seed(ctx context.Context, db *gorm.DB, tableCount int) error {
	if err := seedTables(ctx, db, tableCount); err != nil {
		return err
	}
	return seedMenu(ctx, db)
}

func seedTables(ctx context.Context, db *gorm.DB, tableCount int) error {
	repo := tablerepo.NewGormTableRepository(db)

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}

	taken := make(map[int]bool, len(existing))
	for _, t := range existing {
		taken[t.Number()] = true
	}

	for number := 1; number <= tableCount; number++ {
		if taken[number] {
			continue
		}

		token, tokenErr := kernel.NewToken()
		if tokenErr != nil {
			return tokenErr
		}

		t, tableErr := table.NewTable(kernel.NewUUID(), number, token)
		if tableErr != nil {
			return tableErr
		}

		if addErr := repo.Add(ctx, t); addErr != nil {
			return addErr
		}
	}

	return nil
}

func seedMenu(ctx context.Context, db *gorm.DB) error {
	repo := menurepo.NewGormMenuRepository(db)

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, entry := range sampleMenu {
		price, priceErr := kernel.NewPrice(entry.price)
		if priceErr != nil {
			return priceErr
		}

		item, itemErr := menu.NewMenuItem(kernel.NewUUID(), entry.name, entry.description, price, entry.category)
		if itemErr != nil {
			return itemErr
		}

		if addErr := repo.Add(ctx, item); addErr != nil {
			return addErr
		}
	}

	return nil
}
