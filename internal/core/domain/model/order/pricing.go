package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPricingIsNotConstructed is returned when a Pricing was not created through
// one of its factory methods.
var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing or RestorePricing")

// Pricing holds the monetary breakdown of an order and owns its one invariant:
//
//	total == subtotal + tax + shipping - discount
//
// All components are non-negative Money values, so the invariant cannot drift.
// Pricing is an immutable value object; editing line items produces a new one.
type Pricing struct { //nolint:recvcheck //using for validation
	subtotal kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	discount kernel.Money
	total    kernel.Money

	guard guard.ConstructorGuard
}

// NewPricing computes the total from its components and returns the breakdown.
// Fails when the discount exceeds subtotal + tax + shipping, since the total
// must stay non-negative.
func NewPricing(subtotal, tax, shipping, discount kernel.Money) (Pricing, error) {
	if err := errors.Join(
		subtotal.Validate(),
		tax.Validate(),
		shipping.Validate(),
		discount.Validate(),
	); err != nil {
		return Pricing{}, err
	}

	gross, err := subtotal.Add(tax)
	if err != nil {
		return Pricing{}, err
	}
	gross, err = gross.Add(shipping)
	if err != nil {
		return Pricing{}, err
	}
	total, err := gross.Subtract(discount)
	if err != nil {
		return Pricing{}, err
	}

	return Pricing{
		subtotal: subtotal,
		tax:      tax,
		shipping: shipping,
		discount: discount,
		total:    total,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestorePricing rebuilds a Pricing from persistence and re-checks the totals
// invariant, so corrupted rows cannot re-enter the domain unnoticed.
func RestorePricing(subtotal, tax, shipping, discount, total kernel.Money) (Pricing, error) {
	pricing, err := NewPricing(subtotal, tax, shipping, discount)
	if err != nil {
		return Pricing{}, err
	}

	if !pricing.total.IsEqual(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("total is invalid",
			fmt.Errorf("stored total %s does not match computed total %s", total, pricing.total))
	}

	return pricing, nil
}

// Validate ensures the Pricing was created through a factory method.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Subtotal returns the sum of all line item subtotals.
func (p Pricing) Subtotal() kernel.Money {
	return p.subtotal
}

// Tax returns the tax component.
func (p Pricing) Tax() kernel.Money {
	return p.tax
}

// Shipping returns the shipping component.
func (p Pricing) Shipping() kernel.Money {
	return p.shipping
}

// Discount returns the discount component.
func (p Pricing) Discount() kernel.Money {
	return p.discount
}

// Total returns subtotal + tax + shipping - discount.
func (p Pricing) Total() kernel.Money {
	return p.total
}

// WithSubtotal returns a new Pricing with the subtotal replaced and the total
// recomputed, keeping tax, shipping and discount unchanged. Used by the
// edit-items operation.
func (p Pricing) WithSubtotal(subtotal kernel.Money) (Pricing, error) {
	if err := p.Validate(); err != nil {
		return Pricing{}, err
	}
	return NewPricing(subtotal, p.tax, p.shipping, p.discount)
}
