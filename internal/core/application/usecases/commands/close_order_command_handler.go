package commands

import (
	"context"
)

// CloseOrderCommandHandler applies the open→closed lifecycle transition.
// Both lifecycle flags are written in one UPDATE inside one transaction, so a
// concurrent re-close can never interleave a partial update of the pair:
// last write wins for accessories_added, is_closed stays true either way.
type CloseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCloseOrderCommandHandler creates a handler for close operations.
func NewCloseOrderCommandHandler(uowFactory OrderUoWFactory) CloseOrderCommandHandler {
	return CloseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle closes the order named by the command.
// Returns a NotFoundError when the order id does not exist.
func (h *CloseOrderCommandHandler) Handle(ctx context.Context, cmd CloseOrderCommand) error {
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

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Close(cmd.AccessoriesAdded()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
