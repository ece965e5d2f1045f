package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPendingCancellationsQueryIsNotConstructed = errors.New(
		"GetPendingCancellationsQuery must be created via NewGetPendingCancellationsQuery constructor",
	)
)

// GetPendingCancellationsQuery retrieves the admin decision queue: orders whose
// cancellation request has not been approved or rejected yet, oldest request first.
//
// Example:
//
//	query := NewGetPendingCancellationsQuery()
//	handler := NewGetPendingCancellationsQueryHandler(db)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get pending cancellations: %w", err)
//	}
//
//	fmt.Printf("%d cancellation requests awaiting decision\n", len(pending))
type GetPendingCancellationsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingCancellationsQuery creates a query for the cancellation decision queue.
// This is a parameterless query.
func NewGetPendingCancellationsQuery() GetPendingCancellationsQuery {
	return GetPendingCancellationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingCancellationsQueryIsNotConstructed if validation fails.
func (q GetPendingCancellationsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingCancellationsQueryIsNotConstructed)
}

// GetPendingCancellationsQueryResponse represents one pending cancellation request.
// Contains what an admin needs to decide: who asked, why, when, and what the
// order is worth.
type GetPendingCancellationsQueryResponse struct {
	OrderID     kernel.UUID
	CustomerID  kernel.UUID
	Status      string
	Total       int64
	RequestedBy kernel.UUID
	Reason      string
	RequestedAt time.Time
}
