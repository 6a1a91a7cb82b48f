package commands

import (
	"context"
)

// CleanupLinesCommandHandler handles administrative bulk deletion of lines.
// The delete runs as a single statement inside one transaction, so no
// partial deletion is ever observable.
type CleanupLinesCommandHandler struct {
	uowFactory LineUoWFactory
}

// NewCleanupLinesCommandHandler creates a handler for cleanup operations.
func NewCleanupLinesCommandHandler(uowFactory LineUoWFactory) CleanupLinesCommandHandler {
	return CleanupLinesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cleanup command and returns the number of lines
// actually removed. No event is published; observers converge on the next
// authoritative snapshot, which is how bulk deletions reach staff views.
func (h *CleanupLinesCommandHandler) Handle(ctx context.Context, cmd CleanupLinesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		deleted int64
		err     error
	)

	if cmd.All() {
		deleted, err = uow.LineRepository().DeleteAll(ctx)
	} else {
		deleted, err = uow.LineRepository().DeleteByStatuses(ctx, cmd.Statuses())
	}
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
