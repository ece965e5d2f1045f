package commands

import (
	"context"
)

// EditLineItemsCommandHandler replaces an order's positions and recomputes its
// totals. The domain enforces the admin role and the pre-packing edit window.
type EditLineItemsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewEditLineItemsCommandHandler creates a handler for line item edits.
func NewEditLineItemsCommandHandler(uowFactory OrderUoWFactory) EditLineItemsCommandHandler {
	return EditLineItemsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the line item edit command.
func (h *EditLineItemsCommandHandler) Handle(ctx context.Context, cmd EditLineItemsCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.EditLineItems(cmd.LineItems(), cmd.Role()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
