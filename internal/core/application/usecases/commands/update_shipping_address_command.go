package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateShippingAddressCommandIsNotConstructed = errors.New(
	"UpdateShippingAddressCommand must be created via NewUpdateShippingAddressCommand constructor",
)

// UpdateShippingAddressCommand represents a request to change an order's
// delivery destination. The address freezes once the order is packed.
type UpdateShippingAddressCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	address kernel.Address

	guard guard.ConstructorGuard
}

// NewUpdateShippingAddressCommand creates a command to replace the shipping address.
func NewUpdateShippingAddressCommand(
	orderID kernel.UUID,
	street, city, postalCode, country string,
) (UpdateShippingAddressCommand, error) {
	cmd := UpdateShippingAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return UpdateShippingAddressCommand{}, err
	}

	address, err := kernel.NewAddress(street, city, postalCode, country)
	if err != nil {
		return UpdateShippingAddressCommand{}, err
	}

	cmd.orderID = orderID
	cmd.address = address
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShippingAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShippingAddressCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateShippingAddressCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Address returns the new delivery destination.
func (c UpdateShippingAddressCommand) Address() kernel.Address {
	return c.address
}
