package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the full order read model from the database.
// Reads the order header plus its line item and fulfillment entry rows without
// going through the domain aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the order's read model.
// Returns errs.ObjectNotFoundError when no such order exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.fetchHeader(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.LineItems, err = h.fetchLineItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.FulfillmentLog, err = h.fetchFulfillmentLog(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// fetchHeader reads the order row including the optional cancellation,
// cash collection and invoice columns.
func (h GetOrderQueryHandler) fetchHeader(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			version,
			customer_id,
			status,
			payment_status,
			payment_method,
			last_payment_event_id,
			pricing_subtotal,
			pricing_tax,
			pricing_shipping,
			pricing_discount,
			pricing_total,
			address_street,
			address_city,
			address_postal_code,
			address_country,
			cancellation_requested_by,
			cancellation_reason,
			cancellation_requested_at,
			cancellation_decision,
			cancellation_decided_by,
			cancellation_decided_at,
			cash_amount,
			cash_collected_by,
			cash_collected_at,
			invoice_id,
			invoice_url
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var response GetOrderQueryResponse
	var id, customerID uuid.UUID
	var status, paymentStatus, paymentMethod int

	var cancellationRequestedBy, cancellationDecidedBy uuid.NullUUID
	var cancellationReason sql.NullString
	var cancellationRequestedAt, cancellationDecidedAt sql.NullTime
	var cancellationDecision sql.NullInt64

	var cashAmount sql.NullInt64
	var cashCollectedBy uuid.NullUUID
	var cashCollectedAt sql.NullTime

	var invoiceID, invoiceURL sql.NullString

	err = rows.Scan(
		&id,
		&response.Version,
		&customerID,
		&status,
		&paymentStatus,
		&paymentMethod,
		&response.LastPaymentEventID,
		&response.Pricing.Subtotal,
		&response.Pricing.Tax,
		&response.Pricing.Shipping,
		&response.Pricing.Discount,
		&response.Pricing.Total,
		&response.ShippingAddress.Street,
		&response.ShippingAddress.City,
		&response.ShippingAddress.PostalCode,
		&response.ShippingAddress.Country,
		&cancellationRequestedBy,
		&cancellationReason,
		&cancellationRequestedAt,
		&cancellationDecision,
		&cancellationDecidedBy,
		&cancellationDecidedAt,
		&cashAmount,
		&cashCollectedBy,
		&cashCollectedAt,
		&invoiceID,
		&invoiceURL,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.CustomerID, err = kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Status = order.Status(status).String()
	response.PaymentStatus = order.PaymentStatus(paymentStatus).String()
	response.PaymentMethod = order.PaymentMethod(paymentMethod).String()

	if cancellationRequestedBy.Valid {
		requestedBy, reqErr := kernel.UUIDFromBytes(cancellationRequestedBy.UUID[:])
		if reqErr != nil {
			return GetOrderQueryResponse{}, reqErr
		}

		cancellation := CancellationResponse{
			RequestedBy: requestedBy,
			Reason:      cancellationReason.String,
			RequestedAt: cancellationRequestedAt.Time,
			Decision:    order.CancellationDecision(cancellationDecision.Int64).String(),
		}
		if cancellationDecidedBy.Valid {
			decidedBy, decErr := kernel.UUIDFromBytes(cancellationDecidedBy.UUID[:])
			if decErr != nil {
				return GetOrderQueryResponse{}, decErr
			}
			cancellation.DecidedBy = &decidedBy
		}
		if cancellationDecidedAt.Valid {
			decidedAt := cancellationDecidedAt.Time
			cancellation.DecidedAt = &decidedAt
		}

		response.Cancellation = &cancellation
	}

	if cashCollectedBy.Valid {
		collectedBy, cashErr := kernel.UUIDFromBytes(cashCollectedBy.UUID[:])
		if cashErr != nil {
			return GetOrderQueryResponse{}, cashErr
		}

		response.CashCollection = &CashCollectionResponse{
			CollectedAmount: cashAmount.Int64,
			CollectedBy:     collectedBy,
			CollectedAt:     cashCollectedAt.Time,
		}
	}

	if invoiceID.Valid {
		response.Invoice = &InvoiceResponse{
			ID:  invoiceID.String,
			URL: invoiceURL.String,
		}
	}

	if err = rows.Err(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// fetchLineItems reads the order's line items in their persisted order.
func (h GetOrderQueryHandler) fetchLineItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]LineItemResponse, error) {
	items := make([]LineItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item LineItemResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, err
		}

		item.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// fetchFulfillmentLog reads the order's fulfillment entries in append order.
func (h GetOrderQueryHandler) fetchFulfillmentLog(
	ctx context.Context,
	orderID kernel.UUID,
) ([]FulfillmentEntryResponse, error) {
	entries := make([]FulfillmentEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			stage,
			actor_id,
			occurred_at,
			note
		FROM order_fulfillment_entries
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry FulfillmentEntryResponse
		var stage int
		var actorID uuid.UUID

		err = rows.Scan(
			&stage,
			&actorID,
			&entry.OccurredAt,
			&entry.Note,
		)
		if err != nil {
			return nil, err
		}

		entry.Stage = order.Status(stage).String()
		entry.ActorID, err = kernel.UUIDFromBytes(actorID[:])
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
