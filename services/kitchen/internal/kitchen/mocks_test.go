package kitchen

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/tablesideclub/tableside/services/kitchen/internal/orderstore"
)

// MockOrderStore is a mock implementation of orderstore.Client for testing
type MockOrderStore struct {
	mu     sync.Mutex
	orders map[string]orderstore.ActiveOrder
	calls  int

	ListActiveFunc func(ctx context.Context) ([]orderstore.ActiveOrder, error)
	CompleteFunc   func(ctx context.Context, orderID string) error
}

func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		orders: make(map[string]orderstore.ActiveOrder),
	}
}

func (m *MockOrderStore) Put(o orderstore.ActiveOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
}

func (m *MockOrderStore) ListActive(ctx context.Context) ([]orderstore.ActiveOrder, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]orderstore.ActiveOrder, 0, len(m.orders))
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderStore) Complete(ctx context.Context, orderID string) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, found := m.orders[orderID]; !found {
		return errors.New("order not found")
	}
	delete(m.orders, orderID)
	return nil
}

func (m *MockOrderStore) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockMenuLister serves a fixed menu payload in the service envelope shape
type mockMenuLister struct {
	resp *apt.SuccessResponse
	err  error
}

func (m *mockMenuLister) List(ctx context.Context, resource string) (*apt.SuccessResponse, error) {
	return m.resp, m.err
}

func testOrder(id, table string, items map[string]int) orderstore.ActiveOrder {
	return orderstore.ActiveOrder{
		ID:          id,
		TableNumber: table,
		Items:       items,
		TotalAmount: 100,
		CreatedAt:   time.Now(),
	}
}

func warmedNames() *MenuNameCache {
	names := NewMenuNameCache(nil, nil)
	names.Set("item-chai", "Masala Chai")
	names.Set("item-fries", "Fries")
	return names
}
