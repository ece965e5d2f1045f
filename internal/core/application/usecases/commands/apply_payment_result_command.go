package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyPaymentResultCommandIsNotConstructed = errors.New(
	"ApplyPaymentResultCommand must be created via NewApplyPaymentResultCommand constructor",
)

// ApplyPaymentResultCommand represents one payment-webhook delivery from the
// gateway. The event id identifies the delivery; replays of an already applied
// event id are no-ops.
type ApplyPaymentResultCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	eventID   string
	succeeded bool

	guard guard.ConstructorGuard
}

// NewApplyPaymentResultCommand creates a command to consume a payment webhook event.
func NewApplyPaymentResultCommand(
	orderID kernel.UUID,
	eventID string,
	succeeded bool,
) (ApplyPaymentResultCommand, error) {
	cmd := ApplyPaymentResultCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ApplyPaymentResultCommand{}, err
	}
	if eventID == "" {
		return ApplyPaymentResultCommand{}, errs.NewValueIsRequiredError("eventID")
	}

	cmd.orderID = orderID
	cmd.eventID = eventID
	cmd.succeeded = succeeded
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPaymentResultCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentResultCommandIsNotConstructed)
}

// OrderID returns the order the payment event refers to.
func (c ApplyPaymentResultCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EventID returns the webhook delivery identifier.
func (c ApplyPaymentResultCommand) EventID() string {
	return c.eventID
}

// Succeeded reports whether the gateway captured the payment.
func (c ApplyPaymentResultCommand) Succeeded() bool {
	return c.succeeded
}
