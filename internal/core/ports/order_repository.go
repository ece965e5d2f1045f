package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update performs a compare-and-swap on the aggregate's version: the row is
// written only when the stored version still equals the version the aggregate
// was loaded with, and the stored version is incremented on success. A lost
// race surfaces as errs.VersionConflictError; callers reload and retry or
// propagate the conflict.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under the
	// optimistic-concurrency check described above.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWithPendingCancellation retrieves orders whose cancellation
	// request awaits an admin decision, oldest request first.
	GetAllWithPendingCancellation(ctx context.Context) ([]*order.Order, error)
}
