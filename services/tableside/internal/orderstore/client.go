package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tablesideclub/tableside/services/tableside/internal/ordering"
)

// Client delivers settled orders to the Orders service.
type Client interface {
	Submit(ctx context.Context, sub ordering.OrderSubmission) (string, error)
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

type createOrderPayload struct {
	TableNumber   string         `json:"table_number"`
	Items         map[string]int `json:"items"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
}

type createOrderEnvelope struct {
	Data struct {
		OrderID string `json:"order_id"`
	} `json:"data"`
}

func (c *HTTPClient) Submit(ctx context.Context, sub ordering.OrderSubmission) (string, error) {
	payload := createOrderPayload{
		TableNumber:   sub.TableNumber,
		Items:         sub.Items,
		TotalAmount:   sub.TotalAmount,
		PaymentMethod: sub.PaymentMethod,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cannot marshal order submission: %w", err)
	}

	url := fmt.Sprintf("%s/orders", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var envelope createOrderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("failed to decode order response: %w", err)
	}

	if envelope.Data.OrderID == "" {
		return "", fmt.Errorf("order service returned no order id")
	}

	return envelope.Data.OrderID, nil
}
