package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ghost-kitchen/internal/core/cache"
	"ghost-kitchen/internal/features/menu/domain"
)

const (
	productKeyPrefix = "product:"
	productIndexKey  = "product:index"
)

// RedisProductRepository implements ports.ProductRepository on top of the
// cache port. Each product lives under product:<id> and product:index keeps
// the list of known ids.
type RedisProductRepository struct {
	cache cache.Cache
}

// NewRedisProductRepository creates a new RedisProductRepository.
func NewRedisProductRepository(c cache.Cache) *RedisProductRepository {
	return &RedisProductRepository{
		cache: c,
	}
}

// Save stores the product document and registers its id in the index.
func (r *RedisProductRepository) Save(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	if err := r.cache.Set(ctx, productKeyPrefix+product.ID, data, 0); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == product.ID {
			return nil
		}
	}

	return r.writeIndex(ctx, append(ids, product.ID))
}

// Get retrieves a product by id.
func (r *RedisProductRepository) Get(ctx context.Context, id string) (*domain.Product, error) {
	data, err := r.cache.Get(ctx, productKeyPrefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %s: %w", id, err)
	}

	return &product, nil
}

// List retrieves every product registered in the index. Ids whose document
// disappeared are skipped.
func (r *RedisProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	ids, err := r.index(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Delete removes the product document and drops its id from the index.
func (r *RedisProductRepository) Delete(ctx context.Context, id string) error {
	ids, err := r.index(ctx)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			remaining = append(remaining, existing)
		}
	}

	if err := r.writeIndex(ctx, remaining); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, productKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func (r *RedisProductRepository) index(ctx context.Context) ([]string, error) {
	data, err := r.cache.Get(ctx, productIndexKey)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product index: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product index: %w", err)
	}
	return ids, nil
}

func (r *RedisProductRepository) writeIndex(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal product index: %w", err)
	}
	if err := r.cache.Set(ctx, productIndexKey, data, 0); err != nil {
		return fmt.Errorf("failed to save product index: %w", err)
	}
	return nil
}
