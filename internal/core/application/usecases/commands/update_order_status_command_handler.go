package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler advances an order along the lifecycle state
// machine and notifies the customer after the change has committed.
//
// The notification is a post-commit effect: the status change is durable even
// when the notification fails, in which case the handler reports the partial
// failure as errs.ExternalEffectError.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationDispatcher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status advancement.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationDispatcher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status advancement command.
// The domain enforces role gating, the adjacency table and the completion
// payment check; a stale aggregate version surfaces as VersionConflictError
// from the repository.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if err = aggregate.AdvanceTo(cmd.Target(), cmd.ActorID(), cmd.Role(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.NotifyStatusChanged(
		ctx, aggregate.ID(), aggregate.CustomerID(), cmd.Target().String(),
	); err != nil {
		return errs.NewExternalEffectError("notification", aggregate.ID().String(), err)
	}

	return nil
}
