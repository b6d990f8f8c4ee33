package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MenuItem is the catalog view of one dish as served to diners.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// Client fetches the menu from the Catalog service.
type Client interface {
	Menu(ctx context.Context) ([]MenuItem, error)
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

type collectionEnvelope struct {
	Data []MenuItem `json:"data"`
}

func (c *HTTPClient) Menu(ctx context.Context) ([]MenuItem, error) {
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

	return envelope.Data, nil
}

// NoopClient serves an empty menu, for testing or standalone startup.
type NoopClient struct{}

// NewNoopClient creates a new no-op catalog client
func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) Menu(ctx context.Context) ([]MenuItem, error) {
	return nil, nil
}
