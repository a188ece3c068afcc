// Package exchange fetches the USD buy rate the run uses for price
// normalization. The rate is fetched once at startup; any failure here
// is fatal to the run.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client queries a DolarAPI-compatible endpoint for the current blue
// dollar quote.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for the given quote endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type quoteResponse struct {
	Compra float64 `json:"compra"`
	Venta  float64 `json:"venta"`
}

// FetchBuyRate returns the current ARS-per-USD buy rate. Every failure
// mode — transport error, bad status, malformed body, non-positive
// rate — surfaces as an error so the caller can abort before scraping.
func (c *Client) FetchBuyRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("exchange: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("exchange: fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange: unexpected status %d from %s", resp.StatusCode, c.url)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return 0, fmt.Errorf("exchange: decode response: %w", err)
	}

	if quote.Compra <= 0 {
		return 0, fmt.Errorf("exchange: invalid buy rate %.2f", quote.Compra)
	}

	return quote.Compra, nil
}
