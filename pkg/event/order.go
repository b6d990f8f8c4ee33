package event

import "time"

const (
	OrdersTopic         = "orders.lifecycle"
	EventOrderCreated   = "order.created"
	EventOrderCompleted = "order.completed"
)

// OrderCreatedEvent is published when a diner's order lands in the store.
// The kitchen service uses it to pull its board forward ahead of the
// scheduled poll; the poll remains the source of truth.
type OrderCreatedEvent struct {
	EventType     string         `json:"event_type"`
	OccurredAt    time.Time      `json:"occurred_at"`
	OrderID       string         `json:"order_id"`
	TableNumber   string         `json:"table_number"`
	Items         map[string]int `json:"items"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
}

// OrderCompletedEvent is published when kitchen staff mark an order ready
// and it is removed from the store.
type OrderCompletedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
}
