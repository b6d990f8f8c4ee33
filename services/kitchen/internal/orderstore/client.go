package orderstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ActiveOrder is one order awaiting preparation, as served by the Orders
// service.
type ActiveOrder struct {
	ID            string         `json:"id"`
	TableNumber   string         `json:"table_number"`
	Items         map[string]int `json:"items"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Client reads and completes orders against the Orders service.
type Client interface {
	ListActive(ctx context.Context) ([]ActiveOrder, error)
	Complete(ctx context.Context, orderID string) error
}

// HTTPClient implements Client using HTTP
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP order store client
func NewHTTPClient(baseURL string) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:8083"
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type collectionEnvelope struct {
	Data []ActiveOrder `json:"data"`
}

func (c *HTTPClient) ListActive(ctx context.Context) ([]ActiveOrder, error) {
	url := fmt.Sprintf("%s/orders", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var envelope collectionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode orders response: %w", err)
	}

	return envelope.Data, nil
}

func (c *HTTPClient) Complete(ctx context.Context, orderID string) error {
	url := fmt.Sprintf("%s/orders/%s", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	return nil
}
