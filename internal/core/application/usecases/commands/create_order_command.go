package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput carries the raw data of one order position as received from
// the outer layer. The command constructor turns it into a validated
// order.LineItem.
type LineItemInput struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice int64
}

// CreateOrderCommand represents a request to register a new order in Pending
// status. Encapsulates the customer, the order positions, the shipping
// destination, the payment method and the non-item price components.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), customerID, items,
//	    "12 Main St", "Springfield", "62704", "US",
//	    "Online", 30, 20, 10,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	lineItems       []order.LineItem
	shippingAddress kernel.Address
	paymentMethod   order.PaymentMethod
	tax             kernel.Money
	shipping        kernel.Money
	discount        kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// All identifiers, items, the address and the price components are validated;
// paymentMethod must be "Online" or "CashOnDelivery".
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []LineItemInput,
	street, city, postalCode, country string,
	paymentMethod string,
	tax, shipping, discount int64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLineItems(items),
		cmd.setShippingAddress(street, city, postalCode, country),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setPriceComponents(tax, shipping, discount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// LineItems returns the validated order positions.
func (c CreateOrderCommand) LineItems() []order.LineItem {
	return c.lineItems
}

// ShippingAddress returns the delivery destination.
func (c CreateOrderCommand) ShippingAddress() kernel.Address {
	return c.shippingAddress
}

// PaymentMethod returns how the order will be paid.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Tax returns the tax component in minor units.
func (c CreateOrderCommand) Tax() kernel.Money {
	return c.tax
}

// Shipping returns the shipping fee in minor units.
func (c CreateOrderCommand) Shipping() kernel.Money {
	return c.shipping
}

// Discount returns the discount in minor units.
func (c CreateOrderCommand) Discount() kernel.Money {
	return c.discount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for _, input := range items {
		unitPrice, err := kernel.NewMoney(input.UnitPrice)
		if err != nil {
			return err
		}
		item, err := order.NewLineItem(input.ProductID, input.Quantity, unitPrice)
		if err != nil {
			return err
		}
		lineItems = append(lineItems, item)
	}

	c.lineItems = lineItems
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(street, city, postalCode, country string) error {
	address, err := kernel.NewAddress(street, city, postalCode, country)
	if err != nil {
		return err
	}

	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	method, err := order.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *CreateOrderCommand) setPriceComponents(tax, shipping, discount int64) error {
	taxMoney, err := kernel.NewMoney(tax)
	if err != nil {
		return err
	}
	shippingMoney, err := kernel.NewMoney(shipping)
	if err != nil {
		return err
	}
	discountMoney, err := kernel.NewMoney(discount)
	if err != nil {
		return err
	}

	c.tax = taxMoney
	c.shipping = shippingMoney
	c.discount = discountMoney
	return nil
}
