package service

import (
	"context"
	"sync"
	"time"

	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/features/tracking/ports"

	orders "ghost-kitchen/internal/features/orders/domain"

	"go.uber.org/zap"
)

// Watcher keeps a read-through snapshot of the order collection. The poll
// interval is the correctness baseline; push events only nudge an immediate
// refresh and are never applied as incremental deltas. The snapshot is never
// authoritative; every mutation round-trips through the store.
type Watcher struct {
	source   ports.OrderSource
	interval time.Duration

	mu     sync.RWMutex
	orders []orders.Order

	refresh chan struct{}
}

// NewWatcher creates a Watcher polling at the given interval.
func NewWatcher(source ports.OrderSource, interval time.Duration) *Watcher {
	return &Watcher{
		source:   source,
		interval: interval,
		refresh:  make(chan struct{}, 1),
	}
}

// Run polls the order collection until the context is canceled. An initial
// load happens immediately so early readers do not see an empty snapshot.
func (w *Watcher) Run(ctx context.Context) {
	w.load(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.load(ctx)
		case <-w.refresh:
			w.load(ctx)
		}
	}
}

// load replaces the snapshot with the current store state. A failed fetch
// keeps the previous snapshot; connectivity problems must not corrupt
// locally held state.
func (w *Watcher) load(ctx context.Context) {
	fetched, err := w.source.List(ctx)
	if err != nil {
		logger.Get().Warn("Order snapshot refresh failed, keeping previous snapshot",
			zap.Error(err),
		)
		return
	}

	w.mu.Lock()
	w.orders = fetched
	w.mu.Unlock()
}

// Snapshot returns a copy of the cached order collection, newest first.
func (w *Watcher) Snapshot() []orders.Order {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]orders.Order, len(w.orders))
	copy(out, w.orders)
	return out
}

// Recent returns at most limit orders from the snapshot, newest first.
func (w *Watcher) Recent(limit int) []orders.Order {
	snapshot := w.Snapshot()
	if limit >= 0 && len(snapshot) > limit {
		snapshot = snapshot[:limit]
	}
	return snapshot
}

// nudge requests an immediate refresh without blocking the publisher.
func (w *Watcher) nudge() {
	select {
	case w.refresh <- struct{}{}:
	default:
	}
}

// OrderCreated implements the event listener side of the notifier contract.
// The event payload is ignored; it is a refresh trigger, not a delta.
func (w *Watcher) OrderCreated(*orders.Order) {
	w.nudge()
}

// OrderStatusChanged implements the event listener side of the notifier
// contract.
func (w *Watcher) OrderStatusChanged(*orders.Order) {
	w.nudge()
}
