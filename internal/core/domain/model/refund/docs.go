// Package refund provides the durable retry record for wallet credits owed
// after approved cancellations. When the immediate post-commit credit fails,
// a RefundTask is persisted and a background job retries it with the same
// idempotency key until the wallet confirms.
package refund
