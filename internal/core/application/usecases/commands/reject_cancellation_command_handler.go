package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// RejectCancellationCommandHandler declines a pending cancellation request.
// The decision is committed first; a failed customer notification is reported
// as errs.ExternalEffectError on top of the durable rejection.
type RejectCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	workflow   services.CancellationWorkflow
	notifier   ports.NotificationDispatcher
}

// NewRejectCancellationCommandHandler creates a handler for cancellation rejections.
func NewRejectCancellationCommandHandler(
	uowFactory OrderUoWFactory,
	workflow services.CancellationWorkflow,
	notifier ports.NotificationDispatcher,
) RejectCancellationCommandHandler {
	return RejectCancellationCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
		notifier:   notifier,
	}
}

// Handle processes the rejection command.
func (h *RejectCancellationCommandHandler) Handle(ctx context.Context, cmd RejectCancellationCommand) error {
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

	if err = h.workflow.Reject(aggregate, cmd.DecidedBy(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyCancellationDecided(ctx, aggregate.ID(), aggregate.CustomerID(), false); err != nil {
		return errs.NewExternalEffectError("notification", aggregate.ID().String(), err)
	}

	return nil
}
