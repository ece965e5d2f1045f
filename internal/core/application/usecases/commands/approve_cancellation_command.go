package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveCancellationCommandIsNotConstructed = errors.New(
	"ApproveCancellationCommand must be created via NewApproveCancellationCommand constructor",
)

// ApproveCancellationCommand represents an admin granting a pending
// cancellation request. The order is cancelled even past the pre-packed
// window, and a paid order's total is credited back to the customer's wallet.
type ApproveCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	decidedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveCancellationCommand creates a command to approve a cancellation request.
func NewApproveCancellationCommand(orderID, decidedBy kernel.UUID) (ApproveCancellationCommand, error) {
	cmd := ApproveCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		decidedBy.Validate(),
	); err != nil {
		return ApproveCancellationCommand{}, err
	}

	cmd.orderID = orderID
	cmd.decidedBy = decidedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveCancellationCommand) Validate() error {
	return c.guard.Validate(ErrApproveCancellationCommandIsNotConstructed)
}

// OrderID returns the order whose request is decided.
func (c ApproveCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DecidedBy returns the admin making the decision.
func (c ApproveCancellationCommand) DecidedBy() kernel.UUID {
	return c.decidedBy
}
