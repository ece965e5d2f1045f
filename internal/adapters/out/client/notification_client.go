package client

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// NotificationClient implements ports.NotificationDispatcher against the
// customer notification service's HTTP API.
type NotificationClient struct {
	httpCaller
}

// NewNotificationClient creates a notification client for the given base URL.
func NewNotificationClient(baseURL string) *NotificationClient {
	return &NotificationClient{httpCaller: newHTTPCaller(baseURL)}
}

type statusChangedRequest struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

type cancellationDecidedRequest struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Approved   bool   `json:"approved"`
}

// NotifyStatusChanged tells the customer the order reached a new stage.
func (c *NotificationClient) NotifyStatusChanged(
	ctx context.Context,
	orderID kernel.UUID,
	customerID kernel.UUID,
	status string,
) error {
	request := statusChangedRequest{
		OrderID:    orderID.String(),
		CustomerID: customerID.String(),
		Status:     status,
	}
	return c.postJSON(ctx, "/api/v1/notifications/order-status", nil, request, nil)
}

// NotifyCancellationDecided tells the customer their cancellation request was
// approved or rejected.
func (c *NotificationClient) NotifyCancellationDecided(
	ctx context.Context,
	orderID kernel.UUID,
	customerID kernel.UUID,
	approved bool,
) error {
	request := cancellationDecidedRequest{
		OrderID:    orderID.String(),
		CustomerID: customerID.String(),
		Approved:   approved,
	}
	return c.postJSON(ctx, "/api/v1/notifications/cancellation-decision", nil, request, nil)
}
