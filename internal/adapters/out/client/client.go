// Package client provides thin HTTP adapters for the external collaborators:
// the invoice renderer, the customer notification service and the wallet
// ledger. Each client implements the matching port with a small JSON-over-HTTP
// call; retry policy lives with the callers (post-commit effect reporting and
// the refund retry job), not here.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// httpCaller is the shared POST-a-JSON-document plumbing of the collaborator clients.
type httpCaller struct {
	baseURL string
	client  *http.Client
}

func newHTTPCaller(baseURL string) httpCaller {
	return httpCaller{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// postJSON sends payload to baseURL+path and decodes the response into out
// when out is non-nil. Any non-2xx status is an error.
func (c httpCaller) postJSON(
	ctx context.Context,
	path string,
	headers map[string]string,
	payload any,
	out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
