package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client fetches menu prices from the Catalog service so submitted totals
// can be recomputed authoritatively.
type Client interface {
	Prices(ctx context.Context) (map[string]int64, error)
}

// HTTPClient implements Client using HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP catalog client
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8082"
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type menuItemDTO struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
}

type collectionEnvelope struct {
	Data []menuItemDTO `json:"data"`
}

// Prices returns the current menu item prices keyed by item id.
func (c *HTTPClient) Prices(ctx context.Context) (map[string]int64, error) {
	url := fmt.Sprintf("%s/menu", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var envelope collectionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	prices := make(map[string]int64, len(envelope.Data))
	for _, item := range envelope.Data {
		prices[item.ID] = item.Price
	}
	return prices, nil
}

// NoopClient is a no-op implementation for testing or when total
// recomputation is disabled.
type NoopClient struct{}

// NewNoopClient creates a new no-op catalog client
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) Prices(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}
