package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money values must be created using NewMoney to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a monetary amount in the currency's minor units (e.g. cents).
// Storing amounts as integers keeps arithmetic exact: totals never drift beyond
// minor-unit precision. Money is an immutable value object; the zero value is
// invalid and will fail validation - use NewMoney to create instances.
//
// Example:
//
//	price, err := kernel.NewMoney(1999) // 19.99 in minor units
//	if err != nil {
//	    // Handle validation error
//	}
//	total, _ := price.Multiply(3)
type Money struct { //nolint:recvcheck //using for validation
	amount int64
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units.
// Negative amounts are rejected: every monetary field on an order
// (subtotal, tax, shipping, discount, total) must be non-negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(1<<62))
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Money value was properly constructed using NewMoney.
// The zero value of Money is invalid and will fail this validation.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// IsGreaterOrEqual reports whether m is greater than or equal to other.
func (m Money) IsGreaterOrEqual(other Money) bool {
	return m.amount >= other.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount + other.amount)
}

// Subtract returns the difference of two Money values.
// Returns an error when the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("subtracting %d from %d yields a negative amount", other.amount, m.amount))
	}

	return NewMoney(m.amount - other.amount)
}

// Multiply returns the amount multiplied by a non-negative factor.
// Used to price a line item from its unit price and quantity.
func (m Money) Multiply(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("factor", factor, 0, int(1<<31))
	}

	result := m.amount * int64(factor)
	if m.amount != 0 && result/m.amount != int64(factor) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("multiplying %d by %d overflows the minor-unit range", m.amount, factor))
	}

	return NewMoney(result)
}

// String returns the amount in minor units as a decimal string.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
