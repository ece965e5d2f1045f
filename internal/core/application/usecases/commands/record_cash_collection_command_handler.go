package commands

import (
	"context"
	"time"
)

// RecordCashCollectionCommandHandler accumulates cash collected by delivery
// agents against cash-on-delivery orders. Reaching the order total flips the
// payment status to Paid, which unlocks completion.
type RecordCashCollectionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordCashCollectionCommandHandler creates a handler for cash collection reports.
func NewRecordCashCollectionCommandHandler(uowFactory OrderUoWFactory) RecordCashCollectionCommandHandler {
	return RecordCashCollectionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cash collection command.
func (h *RecordCashCollectionCommandHandler) Handle(ctx context.Context, cmd RecordCashCollectionCommand) error {
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

	if err = aggregate.RecordCashCollection(cmd.Amount(), cmd.CollectedBy(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
