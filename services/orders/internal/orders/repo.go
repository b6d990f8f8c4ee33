package orders

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepo defines the repository interface for the order store.
// Deliberately narrow: orders are never updated in place.
type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	ListActive(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
