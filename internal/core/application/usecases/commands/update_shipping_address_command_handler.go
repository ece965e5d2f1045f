package commands

import (
	"context"
)

// UpdateShippingAddressCommandHandler replaces an order's delivery destination.
// The domain rejects the change once the order has been packed.
type UpdateShippingAddressCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateShippingAddressCommandHandler creates a handler for address changes.
func NewUpdateShippingAddressCommandHandler(uowFactory OrderUoWFactory) UpdateShippingAddressCommandHandler {
	return UpdateShippingAddressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the address change command.
func (h *UpdateShippingAddressCommandHandler) Handle(ctx context.Context, cmd UpdateShippingAddressCommand) error {
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

	if err = aggregate.UpdateShippingAddress(cmd.Address()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
