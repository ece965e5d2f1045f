package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordCashCollectionCommandIsNotConstructed = errors.New(
	"RecordCashCollectionCommand must be created via NewRecordCashCollectionCommand constructor",
)

// RecordCashCollectionCommand represents a delivery agent reporting cash
// collected against a cash-on-delivery order. Collections accumulate; the
// domain rejects any collection that would exceed the order total.
type RecordCashCollectionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	amount      kernel.Money
	collectedBy kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecordCashCollectionCommand creates a command to record a cash collection.
// The amount is in minor units and must be non-negative.
func NewRecordCashCollectionCommand(
	orderID kernel.UUID,
	amount int64,
	collectedBy kernel.UUID,
) (RecordCashCollectionCommand, error) {
	cmd := RecordCashCollectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	money, err := kernel.NewMoney(amount)
	if err != nil {
		return RecordCashCollectionCommand{}, err
	}

	if err = errors.Join(
		orderID.Validate(),
		collectedBy.Validate(),
	); err != nil {
		return RecordCashCollectionCommand{}, err
	}

	cmd.orderID = orderID
	cmd.amount = money
	cmd.collectedBy = collectedBy
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordCashCollectionCommand) Validate() error {
	return c.guard.Validate(ErrRecordCashCollectionCommandIsNotConstructed)
}

// OrderID returns the order the cash was collected against.
func (c RecordCashCollectionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the collected amount.
func (c RecordCashCollectionCommand) Amount() kernel.Money {
	return c.amount
}

// CollectedBy returns the delivery agent who collected the cash.
func (c RecordCashCollectionCommand) CollectedBy() kernel.UUID {
	return c.collectedBy
}
