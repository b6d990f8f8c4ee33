package catalog

import (
	"context"

	"github.com/google/uuid"
)

// MenuItemRepo defines the repository interface for menu items
type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
