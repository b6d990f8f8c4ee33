package orders

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var errOrderNotFound = errors.New("order not found")

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order

	CreateFunc     func(ctx context.Context, order *Order) error
	GetFunc        func(ctx context.Context, id uuid.UUID) (*Order, error)
	ListActiveFunc func(ctx context.Context) ([]*Order, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, order *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id], nil
}

func (m *MockOrderRepo) ListActive(ctx context.Context) ([]*Order, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Order, 0, len(m.orders))
	for _, o := range m.orders {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.orders[id]; !found {
		return errOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *MockOrderRepo) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

// MockCatalogClient serves a fixed price list
type MockCatalogClient struct {
	PricesFunc func(ctx context.Context) (map[string]int64, error)
	prices     map[string]int64
}

func NewMockCatalogClient(prices map[string]int64) *MockCatalogClient {
	return &MockCatalogClient{prices: prices}
}

func (m *MockCatalogClient) Prices(ctx context.Context) (map[string]int64, error) {
	if m.PricesFunc != nil {
		return m.PricesFunc(ctx)
	}
	return m.prices, nil
}

// MockPublisher records published events
type MockPublisher struct {
	mu       sync.Mutex
	Messages []PublishedMessage

	PublishFunc func(ctx context.Context, topic string, data []byte) error
}

type PublishedMessage struct {
	Topic string
	Data  []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, PublishedMessage{Topic: topic, Data: data})
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

func (m *MockPublisher) Published() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedMessage, len(m.Messages))
	copy(out, m.Messages)
	return out
}
