package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrEditLineItemsCommandIsNotConstructed = errors.New(
	"EditLineItemsCommand must be created via NewEditLineItemsCommand constructor",
)

// EditLineItemsCommand represents an admin replacing an order's positions
// before packing. The domain recomputes the subtotal and total; tax, shipping
// and discount stay as priced at creation.
type EditLineItemsCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	lineItems []order.LineItem
	role      order.Role

	guard guard.ConstructorGuard
}

// NewEditLineItemsCommand creates a command to replace an order's line items.
func NewEditLineItemsCommand(
	orderID kernel.UUID,
	items []LineItemInput,
	role order.Role,
) (EditLineItemsCommand, error) {
	cmd := EditLineItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		role.Validate(),
	); err != nil {
		return EditLineItemsCommand{}, err
	}
	if len(items) == 0 {
		return EditLineItemsCommand{}, errs.NewValueIsRequiredError("items")
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for _, input := range items {
		unitPrice, err := kernel.NewMoney(input.UnitPrice)
		if err != nil {
			return EditLineItemsCommand{}, err
		}
		item, err := order.NewLineItem(input.ProductID, input.Quantity, unitPrice)
		if err != nil {
			return EditLineItemsCommand{}, err
		}
		lineItems = append(lineItems, item)
	}

	cmd.orderID = orderID
	cmd.lineItems = lineItems
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditLineItemsCommand) Validate() error {
	return c.guard.Validate(ErrEditLineItemsCommandIsNotConstructed)
}

// OrderID returns the order to edit.
func (c EditLineItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineItems returns the replacement positions.
func (c EditLineItemsCommand) LineItems() []order.LineItem {
	return c.lineItems
}

// Role returns the capability of the actor requesting the edit.
func (c EditLineItemsCommand) Role() order.Role {
	return c.role
}
