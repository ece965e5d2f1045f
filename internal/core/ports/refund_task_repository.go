package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/refund"
)

// RefundTaskRepository defines the persistence contract for refund tasks,
// the durable records of wallet credits still owed after approved cancellations.
type RefundTaskRepository interface {
	// Add persists a new refund task.
	Add(ctx context.Context, task *refund.RefundTask) error

	// Update persists changes to an existing refund task.
	Update(ctx context.Context, task *refund.RefundTask) error

	// Get retrieves a refund task by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such task exists.
	Get(ctx context.Context, id kernel.UUID) (*refund.RefundTask, error)

	// GetAllPending retrieves tasks whose wallet credit has not been
	// confirmed yet, oldest first.
	GetAllPending(ctx context.Context) ([]*refund.RefundTask, error)
}
