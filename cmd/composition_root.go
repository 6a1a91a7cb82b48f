package cmd

import (
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/pubsub"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *pubsub.Bus
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, bus *pubsub.Bus) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        bus,
	}
}

func (c *CompositionRoot) EventBus() *pubsub.Bus {
	return c.bus
}

func (c *CompositionRoot) eventPublisher() ports.EventPublisher {
	return c.bus
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.eventPublisher())
}

func (c *CompositionRoot) CreateAdvanceLineCommandHandler() commands.AdvanceLineCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceLineCommandHandler(f, c.eventPublisher())
}

func (c *CompositionRoot) CreateCleanupLinesCommandHandler() commands.CleanupLinesCommandHandler {
	var f commands.LineUoWFactory = FuncLineUoWFactory(func() commands.LineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCleanupLinesCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveLineCommandHandler() commands.RemoveLineCommandHandler {
	var f commands.LineUoWFactory = FuncLineUoWFactory(func() commands.LineUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveLineCommandHandler(f)
}

func (c *CompositionRoot) CreateCallWaiterCommandHandler() commands.CallWaiterCommandHandler {
	var f commands.TableUoWFactory = FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCallWaiterCommandHandler(f, c.eventPublisher())
}

func (c *CompositionRoot) CreateGetRecentLinesQueryHandler() queries.GetRecentLinesQueryHandler {
	return queries.NewGetRecentLinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTableLinesQueryHandler() queries.GetTableLinesQueryHandler {
	return queries.NewGetTableLinesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMenuItemQueryHandler() queries.GetMenuItemQueryHandler {
	return queries.NewGetMenuItemQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllTablesQueryHandler() queries.GetAllTablesQueryHandler {
	return queries.NewGetAllTablesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveTableQueryHandler() queries.ResolveTableQueryHandler {
	return queries.NewResolveTableQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTopItemsQueryHandler() queries.GetTopItemsQueryHandler {
	return queries.NewGetTopItemsQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncLineUoWFactory func() commands.LineUoW

func (f FuncLineUoWFactory) Create() commands.LineUoW {
	return f()
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}
