package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/refund"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ApproveCancellationCommandHandler grants a pending cancellation request.
//
// The order update and, for paid orders, the refund task are committed in one
// transaction: once the approval is durable the refund is owed no matter what
// happens next. The wallet credit itself runs after commit with an idempotency
// key derived from the order id; when it fails the task stays pending for the
// background retry and the handler reports errs.ExternalEffectError. A failed
// customer notification is reported the same way, though the wallet error
// takes precedence when both fail.
type ApproveCancellationCommandHandler struct {
	uowFactory UoWFactory
	workflow   services.CancellationWorkflow
	wallet     ports.WalletLedger
	notifier   ports.NotificationDispatcher
}

// NewApproveCancellationCommandHandler creates a handler for cancellation approvals.
func NewApproveCancellationCommandHandler(
	uowFactory UoWFactory,
	workflow services.CancellationWorkflow,
	wallet ports.WalletLedger,
	notifier ports.NotificationDispatcher,
) ApproveCancellationCommandHandler {
	return ApproveCancellationCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
		wallet:     wallet,
		notifier:   notifier,
	}
}

// Handle processes the approval command.
func (h *ApproveCancellationCommandHandler) Handle(ctx context.Context, cmd ApproveCancellationCommand) error {
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

	now := time.Now()
	instruction, err := h.workflow.Approve(aggregate, cmd.DecidedBy(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	var task *refund.RefundTask
	if instruction != nil {
		task, err = refund.NewRefundTask(
			instruction.OrderID,
			instruction.CustomerID,
			instruction.Amount,
			instruction.IdempotencyKey,
			now,
		)
		if err != nil {
			return err
		}
		if err = uow.RefundTaskRepository().Add(ctx, task); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyErr := h.notifier.NotifyCancellationDecided(ctx, aggregate.ID(), aggregate.CustomerID(), true)

	if instruction != nil {
		if err = h.wallet.Credit(
			ctx, instruction.CustomerID, instruction.Amount, instruction.IdempotencyKey,
		); err != nil {
			return errs.NewExternalEffectError("wallet credit", instruction.IdempotencyKey, err)
		}
		if err = h.settleTask(ctx, task); err != nil {
			return err
		}
	}

	if notifyErr != nil {
		return errs.NewExternalEffectError("notification", aggregate.ID().String(), notifyErr)
	}
	return nil
}

// settleTask records the wallet's confirmation in a follow-up transaction.
// If this bookkeeping write fails the retry job will re-credit with the same
// idempotency key, which the ledger absorbs.
func (h *ApproveCancellationCommandHandler) settleTask(ctx context.Context, task *refund.RefundTask) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := task.MarkCompleted(time.Now()); err != nil {
		return err
	}
	if err := uow.RefundTaskRepository().Update(ctx, task); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
