package adapters

import (
	"context"
	"testing"

	"ghost-kitchen/internal/core/cache"
	"ghost-kitchen/internal/features/menu/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *RedisProductRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisProductRepository(adapter)
}

func TestRedisProductRepository_SaveAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	product := &domain.Product{ID: "burger-01", Name: "Smash Burger", Price: 12.50, Available: true}
	require.NoError(t, repo.Save(ctx, product))

	got, err := repo.Get(ctx, "burger-01")
	require.NoError(t, err)
	assert.Equal(t, product, got)
}

func TestRedisProductRepository_Get_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestRedisProductRepository_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Product{ID: "burger-01", Name: "Smash Burger", Price: 12.50, Available: true}))
	require.NoError(t, repo.Save(ctx, &domain.Product{ID: "fries-01", Name: "Fries", Price: 4.25, Available: false}))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "burger-01", products[0].ID)
	assert.Equal(t, "fries-01", products[1].ID)
}

func TestRedisProductRepository_List_Empty(t *testing.T) {
	repo := setupRepo(t)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRedisProductRepository_Save_DoesNotDuplicateIndex(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	product := &domain.Product{ID: "burger-01", Name: "Smash Burger", Price: 12.50, Available: true}
	require.NoError(t, repo.Save(ctx, product))

	product.Price = 13.00
	require.NoError(t, repo.Save(ctx, product))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 13.00, products[0].Price)
}

func TestRedisProductRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Product{ID: "burger-01", Name: "Smash Burger", Price: 12.50, Available: true}))
	require.NoError(t, repo.Delete(ctx, "burger-01"))

	_, err := repo.Get(ctx, "burger-01")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
