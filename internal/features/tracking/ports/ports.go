package ports

import (
	"context"

	orders "ghost-kitchen/internal/features/orders/domain"
)

// OrderSource is the read-only slice of the order store the tracking view
// consumes. This is a Secondary Port (Driven Port).
type OrderSource interface {
	// GetByCode retrieves an order by its human-facing code.
	GetByCode(ctx context.Context, code string) (*orders.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]orders.Order, error)
}
