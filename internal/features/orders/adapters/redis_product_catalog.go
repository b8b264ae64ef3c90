package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"ghost-kitchen/internal/features/orders/domain"

	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "product:"

// RedisProductCatalog implements ports.ProductCatalog against the product
// documents the catalog service maintains under product:<id>. The order flow
// only ever reads them.
type RedisProductCatalog struct {
	client *redis.Client
}

// NewRedisProductCatalog creates a new RedisProductCatalog.
func NewRedisProductCatalog(client *redis.Client) *RedisProductCatalog {
	return &RedisProductCatalog{client: client}
}

// GetProduct resolves a product by id.
func (c *RedisProductCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %s: %w", id, err)
	}

	return &product, nil
}
