package client

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceClient implements ports.InvoiceService against the invoice
// rendering service's HTTP API.
type InvoiceClient struct {
	httpCaller
}

// NewInvoiceClient creates an invoice client for the given base URL.
func NewInvoiceClient(baseURL string) *InvoiceClient {
	return &InvoiceClient{httpCaller: newHTTPCaller(baseURL)}
}

type generateInvoiceRequest struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Total      int64  `json:"total"`
}

type generateInvoiceResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GenerateInvoice renders an invoice for the order and returns its identifier
// and document URL.
func (c *InvoiceClient) GenerateInvoice(
	ctx context.Context,
	orderID kernel.UUID,
	customerID kernel.UUID,
	total kernel.Money,
) (string, string, error) {
	request := generateInvoiceRequest{
		OrderID:    orderID.String(),
		CustomerID: customerID.String(),
		Total:      total.Amount(),
	}

	var response generateInvoiceResponse
	if err := c.postJSON(ctx, "/api/v1/invoices", nil, request, &response); err != nil {
		return "", "", err
	}

	return response.ID, response.URL, nil
}
