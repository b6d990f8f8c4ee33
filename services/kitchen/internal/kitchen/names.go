package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt"
)

// UnknownItemName is shown for items the catalog no longer knows about,
// typically dishes deleted after the order was placed.
const UnknownItemName = "Unknown Item"

type menuLister interface {
	List(ctx context.Context, resource string) (*apt.SuccessResponse, error)
}

// MenuNameCache resolves menu item ids to display names for the board.
// It is warmed from the Catalog service and refreshed on demand.
type MenuNameCache struct {
	mu     sync.RWMutex
	names  map[string]string
	client menuLister
	logger apt.Logger
}

func NewMenuNameCache(client menuLister, logger apt.Logger) *MenuNameCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &MenuNameCache{
		names:  make(map[string]string),
		client: client,
		logger: logger,
	}
}

type menuItemView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WarmUp loads the current menu into the cache. A failure leaves previous
// entries in place.
func (c *MenuNameCache) WarmUp(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("menu client not available")
	}

	resp, err := c.client.List(ctx, "menu")
	if err != nil {
		return fmt.Errorf("cannot fetch menu: %w", err)
	}
	if resp == nil {
		return fmt.Errorf("nil menu response")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("cannot rehydrate menu response: %w", err)
	}

	var items []menuItemView
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("cannot decode menu items: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		if item.ID != "" && item.Name != "" {
			c.names[item.ID] = item.Name
		}
	}

	c.logger.Info("menu name cache warmed", "items", len(items))
	return nil
}

// Name returns the display name for an item id, or UnknownItemName.
func (c *MenuNameCache) Name(itemID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if name, found := c.names[itemID]; found {
		return name
	}
	return UnknownItemName
}

// Set stores a single name, used by tests and incremental updates.
func (c *MenuNameCache) Set(itemID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[itemID] = name
}

func (c *MenuNameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
