package service

import (
	"context"
	"errors"
	"fmt"

	"ghost-kitchen/internal/core/auth"
	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/features/orders/domain"
	"ghost-kitchen/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrForbidden is returned when the actor's role does not permit the
// requested operation.
var ErrForbidden = errors.New("operation not permitted for role")

// CreateItem is a single requested line item on order creation. Price is
// resolved from the catalog, never taken from the client.
type CreateItem struct {
	ProductID string
	Quantity  int
}

// OrderService is the order lifecycle engine. It validates items against the
// catalog, enforces the status transition table and emits events for every
// state change. It holds no in-memory state; all correctness reduces to the
// store's constraints.
type OrderService struct {
	repo    ports.OrderRepository
	catalog ports.ProductCatalog
	codes   *CodeGenerator
	events  ports.EventPublisher
	locker  ports.LockerGateway
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	codes *CodeGenerator,
	events ports.EventPublisher,
	locker ports.LockerGateway,
) *OrderService {
	return &OrderService{
		repo:    repo,
		catalog: catalog,
		codes:   codes,
		events:  events,
		locker:  locker,
	}
}

// CreateOrder validates the requested items against the catalog, snapshots
// unit prices, reserves a tracking code and persists the order in PREPARING.
// All validation happens before the single persist call; nothing is partially
// written. A duplicate-code race at persist time is retried once with a fresh
// code before surfacing as exhaustion.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, items []CreateItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Available {
			return nil, domain.ErrProductUnavailable
		}

		orderItems = append(orderItems, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order, err := s.persistWithFreshCode(ctx, customerID, orderItems)
	if err != nil {
		return nil, err
	}

	s.events.OrderCreated(order)

	logger.Get().Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("code", order.Code),
		zap.Float64("total", order.Total),
	)

	return order, nil
}

// persistWithFreshCode generates a code and persists the order, retrying once
// with a new code if the store reports the code was reserved concurrently.
func (s *OrderService) persistWithFreshCode(ctx context.Context, customerID string, items []domain.OrderItem) (*domain.Order, error) {
	for attempt := 0; attempt < 2; attempt++ {
		code, err := s.codes.Generate(ctx)
		if err != nil {
			return nil, err
		}

		order, err := domain.NewOrder(customerID, code, items)
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domain.ErrDuplicateCode) {
			return nil, fmt.Errorf("failed to persist order: %w", err)
		}

		logger.Get().Warn("Order code collided at persist time, regenerating",
			zap.String("code", code),
		)
	}

	return nil, ErrCodeSpaceExhausted
}

// AdvanceStatus moves an order along the PREPARING→READY→DELIVERED pipeline.
// Only cooks and admins may advance orders. Repeating the current status is
// an idempotent no-op so duplicate clicks are harmless. The store update is a
// compare-and-swap on the fetched status; a lost race against a different
// target surfaces as a retryable conflict.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, target domain.OrderStatus, actor auth.Actor) (*domain.Order, error) {
	if !actor.Role.CanAdvanceOrders() {
		return nil, ErrForbidden
	}

	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		return order, nil
	}

	if !domain.CanTransition(order.Status, target) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, order.Status, target)
	if errors.Is(err, domain.ErrStatusConflict) {
		// A concurrent writer moved the order first. If it landed the same
		// target the repeat is a no-op success; otherwise the caller retries.
		current, getErr := s.repo.Get(ctx, orderID)
		if getErr == nil && current.Status == target {
			return current, nil
		}
		return nil, domain.ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}

	s.events.OrderStatusChanged(updated)

	logger.Get().Info("Order status changed",
		zap.String("order_id", updated.ID),
		zap.String("code", updated.Code),
		zap.String("status", string(updated.Status)),
		zap.String("actor_role", string(actor.Role)),
	)

	if updated.Status == domain.OrderStatusReady {
		if err := s.locker.Unlock(ctx, updated.Code); err != nil {
			// The locker bridge is best effort; a failed unlock never fails
			// the transition.
			logger.Get().Error("Locker unlock failed",
				zap.String("code", updated.Code),
				zap.Error(err),
			)
		}
	}

	return updated, nil
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// GetOrderByCode retrieves an order by its human-facing code. Public lookup,
// no authentication required.
func (s *OrderService) GetOrderByCode(ctx context.Context, code string) (*domain.Order, error) {
	return s.repo.GetByCode(ctx, code)
}

// ListOrders returns every order, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// ListCustomerOrders returns the order history of a single customer.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
