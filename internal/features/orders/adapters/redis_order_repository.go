package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ghost-kitchen/internal/features/orders/domain"

	"github.com/redis/go-redis/v9"
)

const (
	orderKeyPrefix       = "order:"
	codeKeyPrefix        = "order:code:"
	ordersByCreatedKey   = "orders:created"
	customerOrdersPrefix = "orders:customer:"
)

// RedisOrderRepository implements ports.OrderRepository on Redis. An order is
// a JSON document under order:<id>; the code index order:code:<code> is
// reserved with SETNX and is the store's uniqueness constraint on codes.
type RedisOrderRepository struct {
	client *redis.Client
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(client *redis.Client) *RedisOrderRepository {
	return &RedisOrderRepository{client: client}
}

func orderKey(id string) string { return orderKeyPrefix + id }
func codeKey(code string) string { return codeKeyPrefix + code }
func customerOrdersKey(id string) string { return customerOrdersPrefix + id }

// Create persists a new order. The code reservation happens first; losing
// that race surfaces as domain.ErrDuplicateCode so the caller can regenerate.
func (r *RedisOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	reserved, err := r.client.SetNX(ctx, codeKey(order.Code), order.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve order code: %w", err)
	}
	if !reserved {
		return domain.ErrDuplicateCode
	}

	score := float64(order.CreatedAt.UnixMilli())

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, orderKey(order.ID), data, 0)
	pipe.ZAdd(ctx, ordersByCreatedKey, redis.Z{Score: score, Member: order.ID})
	if order.CustomerID != "" {
		pipe.ZAdd(ctx, customerOrdersKey(order.CustomerID), redis.Z{Score: score, Member: order.ID})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		// Release the reservation so the code does not leak on a failed write.
		r.client.Del(ctx, codeKey(order.Code))
		return fmt.Errorf("failed to persist order: %w", err)
	}

	return nil
}

// Get retrieves an order by id.
func (r *RedisOrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	data, err := r.client.Get(ctx, orderKey(id)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %s: %w", id, err)
	}

	return &order, nil
}

// GetByCode retrieves an order through the code index.
func (r *RedisOrderRepository) GetByCode(ctx context.Context, code string) (*domain.Order, error) {
	id, err := r.client.Get(ctx, codeKey(code)).Result()
	if err == redis.Nil {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order code %s: %w", code, err)
	}

	return r.Get(ctx, id)
}

// List returns all orders, newest first.
func (r *RedisOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.listFromIndex(ctx, ordersByCreatedKey)
}

// ListByCustomer returns the orders of one customer, newest first.
func (r *RedisOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return r.listFromIndex(ctx, customerOrdersKey(customerID))
}

func (r *RedisOrderRepository) listFromIndex(ctx context.Context, indexKey string) ([]domain.Order, error) {
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list order ids: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = orderKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var order domain.Order
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// CodeExists reports whether an order code is already reserved.
func (r *RedisOrderRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	n, err := r.client.Exists(ctx, codeKey(code)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check order code %s: %w", code, err)
	}
	return n > 0, nil
}

// UpdateStatus performs a compare-and-swap on the stored status using an
// optimistic WATCH transaction. The lifecycle service is the only legitimate
// caller; transition legality is validated there, not here.
func (r *RedisOrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	key := orderKey(id)
	var updated *domain.Order

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return domain.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get order %s: %w", id, err)
		}

		var order domain.Order
		if err := json.Unmarshal(data, &order); err != nil {
			return fmt.Errorf("failed to unmarshal order %s: %w", id, err)
		}

		if order.Status != from {
			return domain.ErrStatusConflict
		}

		order.Status = to
		payload, err := json.Marshal(&order)
		if err != nil {
			return fmt.Errorf("failed to marshal order %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &order
		return nil
	}

	err := r.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		// The watched key changed between read and write.
		return nil, domain.ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}
