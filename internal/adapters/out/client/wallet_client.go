package client

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// WalletClient implements ports.WalletLedger against the wallet service's
// HTTP API. The idempotency key travels both in the body and in the
// Idempotency-Key header so the ledger can dedup replayed credits.
type WalletClient struct {
	httpCaller
}

// NewWalletClient creates a wallet client for the given base URL.
func NewWalletClient(baseURL string) *WalletClient {
	return &WalletClient{httpCaller: newHTTPCaller(baseURL)}
}

type creditRequest struct {
	Amount         int64  `json:"amount"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Credit adds the amount to the customer's wallet balance.
func (c *WalletClient) Credit(
	ctx context.Context,
	customerID kernel.UUID,
	amount kernel.Money,
	idempotencyKey string,
) error {
	request := creditRequest{
		Amount:         amount.Amount(),
		IdempotencyKey: idempotencyKey,
	}
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	path := fmt.Sprintf("/api/v1/wallets/%s/credits", customerID.String())
	return c.postJSON(ctx, path, headers, request, nil)
}
