package service

import (
	"context"
	"fmt"

	"ghost-kitchen/internal/features/menu/domain"
	"ghost-kitchen/internal/features/menu/ports"
)

// MenuServiceImpl implements ports.MenuService.
type MenuServiceImpl struct {
	repo ports.ProductRepository
}

// NewMenuService creates a new MenuServiceImpl.
func NewMenuService(repo ports.ProductRepository) *MenuServiceImpl {
	return &MenuServiceImpl{
		repo: repo,
	}
}

// UpsertProduct creates or replaces a menu product.
func (s *MenuServiceImpl) UpsertProduct(ctx context.Context, id, name string, price float64, available bool) (*domain.Product, error) {
	product, err := domain.NewProduct(id, name, price, available)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("service: failed to save product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a single product by id.
func (s *MenuServiceImpl) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves the full menu.
func (s *MenuServiceImpl) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}

	return products, nil
}

// SetAvailability flips the ordering flag of an existing product.
func (s *MenuServiceImpl) SetAvailability(ctx context.Context, id string, available bool) (*domain.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.Available == available {
		return product, nil
	}

	product.Available = available
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("service: failed to update availability: %w", err)
	}

	return product, nil
}

// RemoveProduct deletes a product from the menu.
func (s *MenuServiceImpl) RemoveProduct(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to remove product: %w", err)
	}

	return nil
}
