// Package ports defines repository and collaborator interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceService generates invoices for paid orders. Called as a post-commit
// effect once a payment webhook flips an order to Paid.
type InvoiceService interface {
	// GenerateInvoice renders an invoice for the order and returns its
	// identifier and document URL.
	GenerateInvoice(ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, total kernel.Money) (id string, url string, err error)
}

// NotificationDispatcher informs the customer about order lifecycle events.
// Notification failures never roll back the state change they follow.
type NotificationDispatcher interface {
	// NotifyStatusChanged tells the customer the order reached a new stage.
	NotifyStatusChanged(ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, status string) error

	// NotifyCancellationDecided tells the customer their cancellation
	// request was approved or rejected.
	NotifyCancellationDecided(ctx context.Context, orderID kernel.UUID, customerID kernel.UUID, approved bool) error
}

// WalletLedger credits customer wallets. Credit must be idempotent on the
// key: replaying a credit with a key the ledger has already seen is a no-op
// on the balance.
type WalletLedger interface {
	// Credit adds the amount to the customer's wallet balance.
	Credit(ctx context.Context, customerID kernel.UUID, amount kernel.Money, idempotencyKey string) error
}
