package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectCancellationCommandIsNotConstructed = errors.New(
	"RejectCancellationCommand must be created via NewRejectCancellationCommand constructor",
)

// RejectCancellationCommand represents an admin declining a pending
// cancellation request. The order continues its lifecycle unaffected.
type RejectCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	decidedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewRejectCancellationCommand creates a command to reject a cancellation request.
func NewRejectCancellationCommand(orderID, decidedBy kernel.UUID) (RejectCancellationCommand, error) {
	cmd := RejectCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		decidedBy.Validate(),
	); err != nil {
		return RejectCancellationCommand{}, err
	}

	cmd.orderID = orderID
	cmd.decidedBy = decidedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRejectCancellationCommandIsNotConstructed)
}

// OrderID returns the order whose request is decided.
func (c RejectCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DecidedBy returns the admin making the decision.
func (c RejectCancellationCommand) DecidedBy() kernel.UUID {
	return c.decidedBy
}
