package ports

import (
	"context"

	"ghost-kitchen/internal/features/orders/domain"
)

// OrderRepository is the single source of truth for order records.
// This is a Secondary Port (Driven Port).
type OrderRepository interface {
	// Create persists a new order. Returns domain.ErrDuplicateCode if the
	// order code is already reserved by another order.
	Create(ctx context.Context, order *domain.Order) error

	// Get retrieves an order by id. Returns domain.ErrOrderNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Order, error)

	// GetByCode retrieves an order by its human-facing code.
	// Returns domain.ErrOrderNotFound if absent.
	GetByCode(ctx context.Context, code string) (*domain.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// ListByCustomer returns the orders of a single customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)

	// CodeExists reports whether an order code is already reserved.
	CodeExists(ctx context.Context, code string) (bool, error)

	// UpdateStatus moves an order from an expected prior status to a new one
	// using a compare-and-swap. Returns domain.ErrOrderNotFound if the order
	// is absent and domain.ErrStatusConflict if the stored status no longer
	// matches the expected prior status.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}

// ProductCatalog is the read-only lookup into the catalog collaborator.
// Orders never mutate products; they only snapshot price and name.
type ProductCatalog interface {
	// GetProduct resolves a product by id. Returns domain.ErrProductNotFound
	// if the id does not resolve.
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// EventPublisher broadcasts order events to connected viewers. Delivery is
// best effort: no queuing, no replay, no acknowledgment. Viewers self-correct
// on their next poll cycle.
type EventPublisher interface {
	OrderCreated(order *domain.Order)
	OrderStatusChanged(order *domain.Order)
}

// LockerGateway notifies the downstream pickup-locker bridge that an order
// is ready for retrieval.
type LockerGateway interface {
	Unlock(ctx context.Context, orderCode string) error
}
