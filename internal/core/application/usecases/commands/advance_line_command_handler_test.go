package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/events"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/line"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLine(t *testing.T, item *menu.MenuItem, status line.Status) *line.OrderLine {
	t.Helper()
	l, err := line.RestoreOrderLine(
		kernel.NewUUID(), kernel.NewUUID(), item.ID(), 1, status, time.Now().UTC())
	require.NoError(t, err)
	return l
}

func TestNewAdvanceLineCommand_Success(t *testing.T) {
	lineID := kernel.NewUUID()

	cmd, err := commands.NewAdvanceLineCommand(lineID, line.Accepted)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.LineID().IsEqual(lineID))
	assert.Equal(t, line.Accepted, cmd.Status())
}

func TestNewAdvanceLineCommand_Errors(t *testing.T) {
	_, err := commands.NewAdvanceLineCommand(kernel.UUID{}, line.Accepted)
	require.Error(t, err)

	_, err = commands.NewAdvanceLineCommand(kernel.NewUUID(), line.Status(42))
	require.Error(t, err)

	var cmd commands.AdvanceLineCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAdvanceLineCommandIsNotConstructed)
}

func TestAdvanceLineCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	burger := testMenuItem(t, "Burger", 11.5)
	l := testLine(t, burger, line.Pending)
	cmd, _ := commands.NewAdvanceLineCommand(l.ID(), line.Accepted)

	lineRepo := new(MockLineRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForUpdate", ctx, l.ID()).Return(l, nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("Update", ctx, l).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, burger.ID()).Return(burger, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pub := new(MockEventPublisher)
	pub.On("Publish", ctx, mock.AnythingOfType("events.LineStatusChanged")).Once()

	h := commands.NewAdvanceLineCommandHandler(factory, pub)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "accepted", snapshot.Status)
	assert.Equal(t, "Burger", snapshot.Name)

	require.Len(t, pub.Published, 1)
	published, ok := pub.Published[0].(events.LineStatusChanged)
	require.True(t, ok)
	assert.Equal(t, events.KindLineStatusChanged, published.Kind())
	assert.Equal(t, l.ID().String(), published.LineID)
	assert.Equal(t, "accepted", published.Status)

	lineRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestAdvanceLineCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	burger := testMenuItem(t, "Burger", 11.5)
	l := testLine(t, burger, line.Preparing)
	cmd, _ := commands.NewAdvanceLineCommand(l.ID(), line.Preparing)

	lineRepo := new(MockLineRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForUpdate", ctx, l.ID()).Return(l, nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, burger.ID()).Return(burger, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pub := new(MockEventPublisher)
	h := commands.NewAdvanceLineCommandHandler(factory, pub)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "preparing", snapshot.Status)
	assert.Empty(t, pub.Published)
	lineRepo.AssertNotCalled(t, "Update", ctx, l)
	lineRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceLineCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	burger := testMenuItem(t, "Burger", 11.5)
	l := testLine(t, burger, line.Served)
	cmd, _ := commands.NewAdvanceLineCommand(l.ID(), line.Preparing)

	lineRepo := new(MockLineRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForUpdate", ctx, l.ID()).Return(l, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pub := new(MockEventPublisher)
	h := commands.NewAdvanceLineCommandHandler(factory, pub)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, line.ErrIllegalTransition)

	var transitionErr *line.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, line.Served, transitionErr.From)
	assert.Equal(t, line.Preparing, transitionErr.To)
	assert.Empty(t, transitionErr.Allowed)

	assert.Empty(t, pub.Published)
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}

func TestAdvanceLineCommandHandler_Handle_LineNotFound(t *testing.T) {
	ctx := t.Context()
	lineID := kernel.NewUUID()
	cmd, _ := commands.NewAdvanceLineCommand(lineID, line.Accepted)

	lineRepo := new(MockLineRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForUpdate", ctx, lineID).
			Return(nil, errs.NewObjectNotFoundError("lineId", lineID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pub := new(MockEventPublisher)
	h := commands.NewAdvanceLineCommandHandler(factory, pub)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Empty(t, pub.Published)
	uow.AssertExpectations(t)
}

func TestAdvanceLineCommandHandler_Handle_ConcurrentPublishesFollowCommitOrder(t *testing.T) {
	ctx := context.Background()
	burger := testMenuItem(t, "Burger", 11.5)
	first := testLine(t, burger, line.Pending)
	// the same line as the second caller would read it after the first commit
	second, err := line.RestoreOrderLine(
		first.ID(), first.TableID(), burger.ID(), 1, line.Accepted, first.PlacedAt())
	require.NoError(t, err)

	cmdA, _ := commands.NewAdvanceLineCommand(first.ID(), line.Accepted)
	cmdB, _ := commands.NewAdvanceLineCommand(first.ID(), line.Preparing)

	var (
		logMu sync.Mutex
		log   []string
	)
	record := func(entry string) {
		logMu.Lock()
		defer logMu.Unlock()
		log = append(log, entry)
	}

	var commitOnce sync.Once
	firstCommitted := make(chan struct{})

	lineRepo := new(MockLineRepository)
	lineRepo.On("GetForUpdate", ctx, first.ID()).Return(first, nil).Once()
	lineRepo.On("GetForUpdate", ctx, first.ID()).Return(second, nil).Once()
	lineRepo.On("Update", ctx, mock.Anything).Return(nil)

	menuRepo := new(MockMenuRepository)
	menuRepo.On("Get", ctx, burger.ID()).Return(burger, nil)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("LineRepository").Return(lineRepo)
	uow.On("MenuRepository").Return(menuRepo)
	uow.On("Commit", ctx).Return(nil).Run(func(mock.Arguments) {
		record("commit")
		commitOnce.Do(func() { close(firstCommitted) })
	})
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	pub := new(MockEventPublisher)
	pub.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
		event := args.Get(1).(events.LineStatusChanged)
		if event.Status == "accepted" {
			// widen the commit-to-publish window for the first caller
			time.Sleep(100 * time.Millisecond)
		}
		record("publish:" + event.Status)
	})

	h := commands.NewAdvanceLineCommandHandler(factory, pub)

	var (
		wg         sync.WaitGroup
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errA = h.Handle(ctx, cmdA)
	}()
	<-firstCommitted
	go func() {
		defer wg.Done()
		_, errB = h.Handle(ctx, cmdB)
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t,
		[]string{"commit", "publish:accepted", "commit", "publish:preparing"},
		log,
		"events on one line must reach subscribers in commit order")
}

func TestAdvanceLineCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	burger := testMenuItem(t, "Burger", 11.5)
	l := testLine(t, burger, line.Accepted)
	cmd, _ := commands.NewAdvanceLineCommand(l.ID(), line.Preparing)

	lineRepo := new(MockLineRepository)
	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("GetForUpdate", ctx, l.ID()).Return(l, nil).Once(),
		uow.On("LineRepository").Return(lineRepo).Once(),
		lineRepo.On("Update", ctx, l).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", ctx, burger.ID()).Return(burger, nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pub := new(MockEventPublisher)
	h := commands.NewAdvanceLineCommandHandler(factory, pub)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Empty(t, pub.Published)
	uow.AssertExpectations(t)
}
