package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// RetryRefundsCommandHandler gives every pending refund task one more wallet
// credit attempt. Each attempt reuses the task's idempotency key, so a credit
// that actually landed on a previous attempt is absorbed by the ledger and
// the task simply completes.
//
// A failed attempt only bumps the task's attempt counter; the task stays
// pending for the next pass. One failing task does not stop the others.
type RetryRefundsCommandHandler struct {
	uowFactory RefundUoWFactory
	wallet     ports.WalletLedger
}

// NewRetryRefundsCommandHandler creates a handler for the refund retry pass.
func NewRetryRefundsCommandHandler(
	uowFactory RefundUoWFactory,
	wallet ports.WalletLedger,
) RetryRefundsCommandHandler {
	return RetryRefundsCommandHandler{
		uowFactory: uowFactory,
		wallet:     wallet,
	}
}

// Handle processes one retry pass over all pending refund tasks.
func (h *RetryRefundsCommandHandler) Handle(ctx context.Context, cmd RetryRefundsCommand) error {
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

	taskRepo := uow.RefundTaskRepository()
	tasks, err := taskRepo.GetAllPending(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, task := range tasks {
		creditErr := h.wallet.Credit(ctx, task.CustomerID(), task.Amount(), task.IdempotencyKey())
		if creditErr != nil {
			if err = task.RecordAttempt(now); err != nil {
				return err
			}
		} else {
			if err = task.MarkCompleted(now); err != nil {
				return err
			}
		}

		if err = taskRepo.Update(ctx, task); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
