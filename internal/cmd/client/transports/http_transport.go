package transports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rzbill/flake/pkg/id"
)

// HTTPTransport implements IDsTransport over the HTTP API.
type HTTPTransport struct {
	baseURL func() string
	client  *http.Client
}

// NewHTTPTransport constructs an HTTPTransport. A nil client uses
// http.DefaultClient.
func NewHTTPTransport(baseURL func() string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: baseURL, client: client}
}

// Next calls GET /v1/ids?count=N.
func (t *HTTPTransport) Next(ctx context.Context, count int) ([]id.ID, error) {
	q := url.Values{"count": []string{strconv.Itoa(count)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL()+"/v1/ids?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}

	var body struct {
		IDs []id.ID `json:"ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body.IDs, nil
}
