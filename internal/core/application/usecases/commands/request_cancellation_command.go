package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand represents a customer asking to cancel their own
// order. The request opens a pending decision for an admin; the order status
// is not changed by the request itself.
type RequestCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requestedBy kernel.UUID
	reason      string

	guard guard.ConstructorGuard
}

// NewRequestCancellationCommand creates a command to open a cancellation request.
// The reason is free text and may be empty.
func NewRequestCancellationCommand(
	orderID kernel.UUID,
	requestedBy kernel.UUID,
	reason string,
) (RequestCancellationCommand, error) {
	cmd := RequestCancellationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		requestedBy.Validate(),
	); err != nil {
		return RequestCancellationCommand{}, err
	}

	cmd.orderID = orderID
	cmd.requestedBy = requestedBy
	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c RequestCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestedBy returns the customer asking for cancellation.
func (c RequestCancellationCommand) RequestedBy() kernel.UUID {
	return c.requestedBy
}

// Reason returns the customer's free-text reason.
func (c RequestCancellationCommand) Reason() string {
	return c.reason
}
