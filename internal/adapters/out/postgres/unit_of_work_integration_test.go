package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "tableside/internal/adapters/out/postgres"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and the
// three repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts PostgreSQL and migrates the schema once for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = postgres_adapter.Migrate(db)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to keep tests independent.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_lines, tables, menu_items").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newTable(number int) *table.Table {
	token, err := kernel.NewToken()
	suite.Require().NoError(err)
	t, err := table.NewTable(kernel.NewUUID(), number, token)
	suite.Require().NoError(err)
	return t
}

func (suite *UnitOfWorkIntegrationTestSuite) newMenuItem(name string, amount float64) *menu.MenuItem {
	price, err := kernel.NewPrice(amount)
	suite.Require().NoError(err)
	item, err := menu.NewMenuItem(kernel.NewUUID(), name, "", price, "mains")
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) newLine(tbl *table.Table, item *menu.MenuItem) *line.OrderLine {
	l, err := line.NewOrderLine(kernel.NewUUID(), tbl.ID(), item.ID(), 1, time.Now().UTC())
	suite.Require().NoError(err)
	return l
}

// seedFixtures persists one table and one catalog item outside any test
// transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedFixtures() (*table.Table, *menu.MenuItem) {
	ctx := context.Background()
	tbl := suite.newTable(1)
	item := suite.newMenuItem("Margherita Pizza", 8.99)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TableRepository().Add(ctx, tbl))
	suite.Require().NoError(uow.MenuRepository().Add(ctx, item))
	suite.Require().NoError(uow.Commit(ctx))

	return tbl, item
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.LineRepository())
	suite.NotNil(uow1.TableRepository())
	suite.NotNil(uow2.MenuRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin must not nest")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without begin must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without begin must fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsLines() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	l := suite.newLine(tbl, item)
	suite.Require().NoError(uow.LineRepository().Add(ctx, l))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().LineRepository().Get(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsLines() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	l := suite.newLine(tbl, item)
	suite.Require().NoError(uow.LineRepository().Add(ctx, l))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().LineRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(l.ID()))
	suite.True(got.TableID().IsEqual(tbl.ID()))
	suite.Equal(line.Pending, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetForUpdate_StatusChangeRoundTrip() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	l := suite.newLine(tbl, item)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LineRepository().Add(ctx, l))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.LineRepository().GetForUpdate(ctx, l.ID())
	suite.Require().NoError(err)

	changed, err := locked.ChangeStatus(line.Accepted)
	suite.Require().NoError(err)
	suite.True(changed)

	suite.Require().NoError(uow.LineRepository().Update(ctx, locked))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().LineRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal(line.Accepted, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentAdvances_ExactlyOneWins() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	l, err := line.RestoreOrderLine(
		kernel.NewUUID(), tbl.ID(), item.ID(), 1, line.Preparing, time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LineRepository().Add(ctx, l))
	suite.Require().NoError(uow.Commit(ctx))

	advance := func(target line.Status) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() { _ = uow.Rollback(ctx) }()

		locked, err := uow.LineRepository().GetForUpdate(ctx, l.ID())
		if err != nil {
			return err
		}
		changed, err := locked.ChangeStatus(target)
		if err != nil {
			return err
		}
		if changed {
			if err = uow.LineRepository().Update(ctx, locked); err != nil {
				return err
			}
		}
		return uow.Commit(ctx)
	}

	// served and cancelled are both terminal, so whichever transition
	// commits first makes the other illegal
	type outcome struct {
		target line.Status
		err    error
	}
	outcomes := make(chan outcome, 2)
	start := make(chan struct{})
	for _, target := range []line.Status{line.Served, line.Cancelled} {
		go func(target line.Status) {
			<-start
			outcomes <- outcome{target: target, err: advance(target)}
		}(target)
	}
	close(start)

	first, second := <-outcomes, <-outcomes
	winner, loser := first, second
	if winner.err != nil {
		winner, loser = second, first
	}

	suite.Require().NoError(winner.err, "exactly one advance must commit")
	suite.Require().Error(loser.err, "the other must fail against the committed status")

	var transitionErr *line.IllegalTransitionError
	suite.Require().ErrorAs(loser.err, &transitionErr)
	suite.Equal(winner.target, transitionErr.From,
		"the loser must be re-validated against the winner's committed status")
	suite.Equal(loser.target, transitionErr.To)
	suite.Empty(transitionErr.Allowed)

	got, err := suite.factory.Create().LineRepository().Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal(winner.target, got.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeleteByStatuses() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	pending := suite.newLine(tbl, item)
	suite.Require().NoError(uow.LineRepository().Add(ctx, pending))

	served, err := line.RestoreOrderLine(
		kernel.NewUUID(), tbl.ID(), item.ID(), 1, line.Served, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.LineRepository().Add(ctx, served))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	deleted, err := uow.LineRepository().DeleteByStatuses(ctx, []line.Status{line.Served, line.Cancelled})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(1), deleted)

	_, err = suite.factory.Create().LineRepository().Get(ctx, pending.ID())
	suite.Require().NoError(err, "pending line must survive a served/cancelled cleanup")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeleteAll() {
	ctx := context.Background()
	tbl, item := suite.seedFixtures()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LineRepository().Add(ctx, suite.newLine(tbl, item)))
	suite.Require().NoError(uow.LineRepository().Add(ctx, suite.newLine(tbl, item)))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	deleted, err := uow.LineRepository().DeleteAll(ctx)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(2), deleted)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTableRepository_GetByToken() {
	ctx := context.Background()
	tbl, _ := suite.seedFixtures()

	got, err := suite.factory.Create().TableRepository().GetByToken(ctx, tbl.Token())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(tbl.ID()))
	suite.Equal(tbl.Number(), got.Number())

	missing, err := kernel.NewToken()
	suite.Require().NoError(err)
	_, err = suite.factory.Create().TableRepository().GetByToken(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSeed_Idempotent() {
	ctx := context.Background()

	err := postgres_adapter.Seed(ctx, suite.db, 10)
	suite.Require().NoError(err)

	tables, err := suite.factory.Create().TableRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(tables, 10)
	firstToken := tables[0].Token().String()

	items, err := suite.factory.Create().MenuRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(items, 4)

	// second run must not re-provision or rotate tokens
	err = postgres_adapter.Seed(ctx, suite.db, 10)
	suite.Require().NoError(err)

	tables, err = suite.factory.Create().TableRepository().GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(tables, 10)
	suite.Equal(firstToken, tables[0].Token().String())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
