package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order submission.
// A submission under a new order number creates the order; a submission under
// an existing number appends its lines to the existing order and leaves the
// header fields untouched.
//
// Two concurrent submissions for the same number serialize on the unique
// constraint over order_number: the loser's insert fails with a conflict, and
// the handler retries it exactly once as an append before surfacing the
// ConflictError.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order submissions.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the submission and returns the surrogate id of the order
// the lines ended up on.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	id, err := h.upsert(ctx, cmd)
	if err == nil || !errors.Is(err, errs.ErrConflict) {
		return id, err
	}

	// Lost an insert race: the winner's row exists now, append to it.
	// One retry only; a second conflict is surfaced to the caller.
	appendID, appendErr := h.appendToExisting(ctx, cmd)
	if appendErr != nil {
		return 0, err
	}
	return appendID, nil
}

// upsert runs one transaction that either appends to the order already stored
// under the command's number or inserts a new order with the submitted lines.
func (h *CreateOrderCommandHandler) upsert(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	existing, err := repo.GetByNumber(ctx, cmd.OrderNumber())
	switch {
	case err == nil:
		return h.append(ctx, uow, existing, cmd)
	case errors.Is(err, errs.ErrObjectNotFound):
		// First submission for this number.
	default:
		return 0, err
	}

	lines, err := linesFromItems(cmd.Lines())
	if err != nil {
		return 0, err
	}

	newOrder, err := order.NewOrder(cmd.OrderNumber(), cmd.ExtraAccessory(), cmd.Cell(), h.now(), lines)
	if err != nil {
		return 0, err
	}

	if err = repo.Add(ctx, newOrder); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return newOrder.ID(), nil
}

// appendToExisting is the retry path after a lost insert race. It runs in a
// fresh transaction because the conflicting one is already aborted.
func (h *CreateOrderCommandHandler) appendToExisting(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return 0, err
	}

	return h.append(ctx, uow, existing, cmd)
}

// append attaches the submission's lines to an existing order and commits.
// Header fields from the submission are intentionally ignored: extra_accessory
// and cell are immutable after creation.
func (h *CreateOrderCommandHandler) append(
	ctx context.Context,
	uow OrderUoW,
	existing *order.Order,
	cmd CreateOrderCommand,
) (int64, error) {
	lines, err := linesFromItems(cmd.Lines())
	if err != nil {
		return 0, err
	}

	if err = existing.AppendLines(lines); err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Update(ctx, existing); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return existing.ID(), nil
}

func linesFromItems(items []LineItem) ([]*order.AccessoryLine, error) {
	lines := make([]*order.AccessoryLine, 0, len(items))
	for _, item := range items {
		line, err := order.NewAccessoryLine(item.AccessoryType, item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
