package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrInvoiceIsNotConstructed is returned when an Invoice was not created through
// the NewInvoice factory method.
var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is the reference handed back by the invoice collaborator once a paid
// order has been invoiced. It is attached to the order exactly once.
type Invoice struct {
	id    string
	url   string
	guard guard.ConstructorGuard
}

// NewInvoice creates a validated invoice reference.
func NewInvoice(id, url string) (Invoice, error) {
	if id == "" {
		return Invoice{}, errs.NewValueIsRequiredError("invoice id")
	}
	if url == "" {
		return Invoice{}, errs.NewValueIsRequiredError("invoice url")
	}

	return Invoice{
		id:    id,
		url:   url,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Invoice was created through NewInvoice.
func (i Invoice) Validate() error {
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

// ID returns the invoice identifier.
func (i Invoice) ID() string {
	return i.id
}

// URL returns where the rendered invoice document can be fetched.
func (i Invoice) URL() string {
	return i.url
}
