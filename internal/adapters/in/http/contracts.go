package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders. Monetary values are
// minor currency units; the order identifier is assigned by the server.
type CreateOrderRequest struct {
	CustomerID      string            `json:"customer_id"`
	Items           []LineItemPayload `json:"items"`
	ShippingAddress AddressPayload    `json:"shipping_address"`
	PaymentMethod   string            `json:"payment_method"`
	Tax             int64             `json:"tax"`
	Shipping        int64             `json:"shipping"`
	Discount        int64             `json:"discount"`
}

// CreateOrderResponse carries the server-assigned order identifier.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// LineItemPayload is one purchased product line in a request or response.
type LineItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// AddressPayload is a shipping destination in a request or response.
type AddressPayload struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// UpdateStatusRequest is the body of POST /api/v1/orders/{orderID}/status.
type UpdateStatusRequest struct {
	Target string `json:"target"`
}

// RequestCancellationRequest is the body of POST /api/v1/orders/{orderID}/cancellation.
type RequestCancellationRequest struct {
	Reason string `json:"reason"`
}

// RecordCashCollectionRequest is the body of POST /api/v1/orders/{orderID}/cash-collections.
type RecordCashCollectionRequest struct {
	Amount int64 `json:"amount"`
}

// EditLineItemsRequest is the body of PUT /api/v1/orders/{orderID}/line-items.
// The submitted list replaces the order's line items wholesale.
type EditLineItemsRequest struct {
	Items []LineItemPayload `json:"items"`
}

// PaymentWebhookRequest is the body of POST /api/v1/payments/webhook as sent
// by the payment provider.
type PaymentWebhookRequest struct {
	OrderID   string `json:"order_id"`
	EventID   string `json:"event_id"`
	Succeeded bool   `json:"succeeded"`
}

// OrderResponse is the full order read model returned by GET /api/v1/orders/{orderID}.
type OrderResponse struct {
	ID                 string                     `json:"id"`
	Version            int64                      `json:"version"`
	CustomerID         string                     `json:"customer_id"`
	Status             string                     `json:"status"`
	PaymentStatus      string                     `json:"payment_status"`
	PaymentMethod      string                     `json:"payment_method"`
	LastPaymentEventID string                     `json:"last_payment_event_id,omitempty"`
	Pricing            PricingResponse            `json:"pricing"`
	ShippingAddress    AddressPayload             `json:"shipping_address"`
	LineItems          []LineItemPayload          `json:"line_items"`
	FulfillmentLog     []FulfillmentEntryResponse `json:"fulfillment_log"`
	Cancellation       *CancellationResponse      `json:"cancellation,omitempty"`
	CashCollection     *CashCollectionResponse    `json:"cash_collection,omitempty"`
	Invoice            *InvoiceResponse           `json:"invoice,omitempty"`
}

// PricingResponse is the pricing breakdown in minor currency units.
type PricingResponse struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// FulfillmentEntryResponse is one checkpoint of the fulfillment audit trail.
type FulfillmentEntryResponse struct {
	Stage      string    `json:"stage"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note,omitempty"`
}

// CancellationResponse is the cancellation request state, when one exists.
type CancellationResponse struct {
	RequestedBy string     `json:"requested_by"`
	Reason      string     `json:"reason"`
	RequestedAt time.Time  `json:"requested_at"`
	Decision    string     `json:"decision"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// CashCollectionResponse is the cash reconciliation state for
// cash-on-delivery orders.
type CashCollectionResponse struct {
	CollectedAmount int64     `json:"collected_amount"`
	CollectedBy     string    `json:"collected_by"`
	CollectedAt     time.Time `json:"collected_at"`
}

// InvoiceResponse is the attached invoice reference.
type InvoiceResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PendingCancellationResponse is one entry of the admin decision queue
// returned by GET /api/v1/cancellations/pending.
type PendingCancellationResponse struct {
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	RequestedBy string    `json:"requested_by"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}

func toOrderResponse(model queries.GetOrderQueryResponse) OrderResponse {
	response := OrderResponse{
		ID:                 model.ID.String(),
		Version:            model.Version,
		CustomerID:         model.CustomerID.String(),
		Status:             model.Status,
		PaymentStatus:      model.PaymentStatus,
		PaymentMethod:      model.PaymentMethod,
		LastPaymentEventID: model.LastPaymentEventID,
		Pricing: PricingResponse{
			Subtotal: model.Pricing.Subtotal,
			Tax:      model.Pricing.Tax,
			Shipping: model.Pricing.Shipping,
			Discount: model.Pricing.Discount,
			Total:    model.Pricing.Total,
		},
		ShippingAddress: AddressPayload{
			Street:     model.ShippingAddress.Street,
			City:       model.ShippingAddress.City,
			PostalCode: model.ShippingAddress.PostalCode,
			Country:    model.ShippingAddress.Country,
		},
		LineItems:      make([]LineItemPayload, 0, len(model.LineItems)),
		FulfillmentLog: make([]FulfillmentEntryResponse, 0, len(model.FulfillmentLog)),
	}

	for _, item := range model.LineItems {
		response.LineItems = append(response.LineItems, LineItemPayload{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	for _, entry := range model.FulfillmentLog {
		response.FulfillmentLog = append(response.FulfillmentLog, FulfillmentEntryResponse{
			Stage:      entry.Stage,
			ActorID:    entry.ActorID.String(),
			OccurredAt: entry.OccurredAt,
			Note:       entry.Note,
		})
	}

	if model.Cancellation != nil {
		cancellation := &CancellationResponse{
			RequestedBy: model.Cancellation.RequestedBy.String(),
			Reason:      model.Cancellation.Reason,
			RequestedAt: model.Cancellation.RequestedAt,
			Decision:    model.Cancellation.Decision,
			DecidedAt:   model.Cancellation.DecidedAt,
		}
		if model.Cancellation.DecidedBy != nil {
			decidedBy := model.Cancellation.DecidedBy.String()
			cancellation.DecidedBy = &decidedBy
		}
		response.Cancellation = cancellation
	}

	if model.CashCollection != nil {
		response.CashCollection = &CashCollectionResponse{
			CollectedAmount: model.CashCollection.CollectedAmount,
			CollectedBy:     model.CashCollection.CollectedBy.String(),
			CollectedAt:     model.CashCollection.CollectedAt,
		}
	}

	if model.Invoice != nil {
		response.Invoice = &InvoiceResponse{
			ID:  model.Invoice.ID,
			URL: model.Invoice.URL,
		}
	}

	return response
}
