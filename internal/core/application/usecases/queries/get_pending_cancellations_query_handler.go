package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingCancellationsQueryHandler retrieves pending cancellation requests
// from the database, oldest request first.
type GetPendingCancellationsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingCancellationsQueryHandler creates a handler for the cancellation
// decision queue. Requires a GORM database connection for query execution.
func NewGetPendingCancellationsQueryHandler(db *gorm.DB) GetPendingCancellationsQueryHandler {
	return GetPendingCancellationsQueryHandler{db: db}
}

// Handle executes the query to retrieve all pending cancellation requests.
// Results are sorted by request time so the oldest request is decided first.
func (h GetPendingCancellationsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingCancellationsQuery,
) ([]GetPendingCancellationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingCancellationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			pricing_total,
			cancellation_requested_by,
			cancellation_reason,
			cancellation_requested_at
		FROM orders
		WHERE cancellation_decision = ?
		ORDER BY cancellation_requested_at
	`, int(order.DecisionPending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingCancellationsQueryResponse
		var orderID, customerID, requestedBy uuid.UUID
		var status int

		err = rows.Scan(
			&orderID,
			&customerID,
			&status,
			&response.Total,
			&requestedBy,
			&response.Reason,
			&response.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		response.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		response.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
		if err != nil {
			return nil, err
		}
		response.RequestedBy, err = kernel.UUIDFromBytes(requestedBy[:])
		if err != nil {
			return nil, err
		}
		response.Status = order.Status(status).String()

		pending = append(pending, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
