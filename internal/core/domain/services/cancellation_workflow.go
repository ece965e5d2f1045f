package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// RefundInstruction tells the caller to credit a customer's wallet after an
// approved cancellation of a paid order. The idempotency key is derived from
// the order id so a replayed credit cannot pay out twice.
type RefundInstruction struct {
	OrderID        kernel.UUID
	CustomerID     kernel.UUID
	Amount         kernel.Money
	IdempotencyKey string
}

// CancellationWorkflow is a domain service coordinating the admin decision on a
// customer cancellation request with its monetary consequence.
//
// Key responsibilities:
//   - Applying the approve/reject decision to the order aggregate
//   - Planning the wallet refund for approved cancellations of paid orders
//   - Deriving a stable idempotency key so refund retries stay safe
//
// Business rules:
//   - Approval cancels the order even past the pre-packed window
//   - Only orders paid online are refunded; COD and unpaid orders are not
//   - The refund amount is the full order total
//
// Example usage:
//
//	workflow := services.NewCancellationWorkflow()
//	refund, err := workflow.Approve(ord, adminID, time.Now())
//	if err != nil {
//	    // Decision could not be applied
//	    return
//	}
//	if refund != nil {
//	    // Credit refund.Amount to refund.CustomerID after commit
//	}
type CancellationWorkflow struct{}

// NewCancellationWorkflow creates a new CancellationWorkflow instance.
func NewCancellationWorkflow() CancellationWorkflow {
	return CancellationWorkflow{}
}

// Approve grants the pending cancellation request on the order and returns the
// refund instruction the caller must execute after commit, or nil when no
// refund is owed.
func (w CancellationWorkflow) Approve(ord *order.Order, decidedBy kernel.UUID, now time.Time) (*RefundInstruction, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if err := decidedBy.Validate(); err != nil {
		return nil, err
	}

	refundDue, err := ord.ApproveCancellation(decidedBy, now)
	if err != nil {
		return nil, err
	}
	if !refundDue {
		return nil, nil
	}

	return &RefundInstruction{
		OrderID:        ord.ID(),
		CustomerID:     ord.CustomerID(),
		Amount:         ord.Pricing().Total(),
		IdempotencyKey: RefundIdempotencyKey(ord.ID()),
	}, nil
}

// Reject declines the pending cancellation request on the order.
func (w CancellationWorkflow) Reject(ord *order.Order, decidedBy kernel.UUID, now time.Time) error {
	if err := ord.Validate(); err != nil {
		return err
	}
	if err := decidedBy.Validate(); err != nil {
		return err
	}

	return ord.RejectCancellation(decidedBy, now)
}

// RefundIdempotencyKey derives the wallet idempotency key for an order's
// cancellation refund. One order cancels at most once, so the key is stable
// across retries.
func RefundIdempotencyKey(orderID kernel.UUID) string {
	return fmt.Sprintf("refund:%s", orderID)
}
