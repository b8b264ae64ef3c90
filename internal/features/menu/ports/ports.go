package ports

import (
	"context"

	"ghost-kitchen/internal/features/menu/domain"
)

// MenuService defines the primary port for menu operations.
type MenuService interface {
	UpsertProduct(ctx context.Context, id, name string, price float64, available bool) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.Product, error)
	RemoveProduct(ctx context.Context, id string) error
}

// ProductRepository defines the secondary port for menu storage.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
