package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrCashCollectionIsNotConstructed is returned when a CashCollection was not
// created through the NewCashCollection factory method.
var ErrCashCollectionIsNotConstructed = errors.New(
	"CashCollection must be created via NewCashCollection constructor")

// CashCollection tracks cash collected by the delivery agent against a
// cash-on-delivery order. It only records amounts; the rule that collections
// must not exceed the order total lives on the Order aggregate, which knows
// the total.
type CashCollection struct { //nolint:recvcheck //using for validation
	collectedAmount kernel.Money
	collectedAt     time.Time
	collectedBy     kernel.UUID

	guard guard.ConstructorGuard
}

// NewCashCollection records the first collection against an order.
func NewCashCollection(amount kernel.Money, collectedBy kernel.UUID, collectedAt time.Time) (CashCollection, error) {
	if err := amount.Validate(); err != nil {
		return CashCollection{}, err
	}
	if err := collectedBy.Validate(); err != nil {
		return CashCollection{}, err
	}

	return CashCollection{
		collectedAmount: amount,
		collectedAt:     collectedAt,
		collectedBy:     collectedBy,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the CashCollection was created through NewCashCollection.
func (cc CashCollection) Validate() error {
	return cc.guard.Validate(ErrCashCollectionIsNotConstructed)
}

// CollectedAmount returns the cumulative amount collected so far.
func (cc CashCollection) CollectedAmount() kernel.Money {
	return cc.collectedAmount
}

// CollectedAt returns when the most recent collection happened.
func (cc CashCollection) CollectedAt() time.Time {
	return cc.collectedAt
}

// CollectedBy returns who performed the most recent collection.
func (cc CashCollection) CollectedBy() kernel.UUID {
	return cc.collectedBy
}

// accumulate returns a new record with the amount added on top of the running
// total. The aggregate checks the ceiling before calling this.
func (cc CashCollection) accumulate(amount kernel.Money, collectedBy kernel.UUID, collectedAt time.Time) (CashCollection, error) {
	if err := cc.Validate(); err != nil {
		return CashCollection{}, err
	}

	sum, err := cc.collectedAmount.Add(amount)
	if err != nil {
		return CashCollection{}, err
	}

	return NewCashCollection(sum, collectedBy, collectedAt)
}
