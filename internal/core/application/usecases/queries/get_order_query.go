package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full read model of a single order:
// header, pricing, line items, fulfillment history, cancellation,
// cash collection and invoice state.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", view.ID, view.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's read model.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Version            int64
	CustomerID         kernel.UUID
	Status             string
	PaymentStatus      string
	PaymentMethod      string
	LastPaymentEventID string

	Pricing         PricingResponse
	ShippingAddress AddressResponse

	LineItems       []LineItemResponse
	FulfillmentLog  []FulfillmentEntryResponse
	Cancellation    *CancellationResponse
	CashCollection  *CashCollectionResponse
	Invoice         *InvoiceResponse
}

// PricingResponse is the pricing breakdown in minor currency units.
type PricingResponse struct {
	Subtotal int64
	Tax      int64
	Shipping int64
	Discount int64
	Total    int64
}

// AddressResponse is the shipping destination.
type AddressResponse struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// LineItemResponse is one purchased product line.
type LineItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice int64
}

// FulfillmentEntryResponse is one checkpoint of the fulfillment audit trail.
type FulfillmentEntryResponse struct {
	Stage      string
	ActorID    kernel.UUID
	OccurredAt time.Time
	Note       string
}

// CancellationResponse is the cancellation request state, when one exists.
type CancellationResponse struct {
	RequestedBy kernel.UUID
	Reason      string
	RequestedAt time.Time
	Decision    string
	DecidedBy   *kernel.UUID
	DecidedAt   *time.Time
}

// CashCollectionResponse is the cash reconciliation state for
// cash-on-delivery orders.
type CashCollectionResponse struct {
	CollectedAmount int64
	CollectedBy     kernel.UUID
	CollectedAt     time.Time
}

// InvoiceResponse is the attached invoice reference.
type InvoiceResponse struct {
	ID  string
	URL string
}
