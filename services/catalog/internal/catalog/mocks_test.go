package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockMenuItemRepo is a mock implementation of MenuItemRepo for testing
type MockMenuItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*MenuItem

	CreateFunc func(ctx context.Context, item *MenuItem) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	ListFunc   func(ctx context.Context) ([]*MenuItem, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockMenuItemRepo() *MockMenuItemRepo {
	return &MockMenuItemRepo{
		items: make(map[uuid.UUID]*MenuItem),
	}
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *MenuItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (m *MockMenuItemRepo) List(ctx context.Context) ([]*MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*MenuItem
	for _, item := range m.items {
		result = append(result, item)
	}
	return result, nil
}

func (m *MockMenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("menu item not found")
	}
	delete(m.items, id)
	return nil
}

func (m *MockMenuItemRepo) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
