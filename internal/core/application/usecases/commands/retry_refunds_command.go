package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRetryRefundsCommandIsNotConstructed = errors.New(
	"RetryRefundsCommand must be created via NewRetryRefundsCommand constructor",
)

// RetryRefundsCommand represents one pass of the background refund retry:
// every pending refund task gets one more wallet credit attempt. The command
// carries no parameters; it exists for the uniform command/handler shape.
type RetryRefundsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRetryRefundsCommand creates a command to retry pending refund tasks.
func NewRetryRefundsCommand() RetryRefundsCommand {
	return RetryRefundsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RetryRefundsCommand) Validate() error {
	return c.guard.Validate(ErrRetryRefundsCommandIsNotConstructed)
}
