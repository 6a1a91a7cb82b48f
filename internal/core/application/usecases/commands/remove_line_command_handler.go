package commands

import (
	"context"

	"tableside/internal/pkg/errs"
)

// RemoveLineCommandHandler handles deletion of a single order line.
type RemoveLineCommandHandler struct {
	uowFactory LineUoWFactory
}

// NewRemoveLineCommandHandler creates a handler for single-line deletion.
func NewRemoveLineCommandHandler(uowFactory LineUoWFactory) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command. Fails with ObjectNotFoundError when
// the line does not exist.
func (h *RemoveLineCommandHandler) Handle(ctx context.Context, cmd RemoveLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.LineRepository().DeleteByID(ctx, cmd.LineID())
	if err != nil {
		return err
	}

	if deleted == 0 {
		return errs.NewObjectNotFoundError("lineId", cmd.LineID().String())
	}

	return uow.Commit(ctx)
}
