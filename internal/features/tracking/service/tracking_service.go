package service

import (
	"context"
	"time"

	"ghost-kitchen/internal/features/tracking/domain"
	"ghost-kitchen/internal/features/tracking/ports"

	orders "ghost-kitchen/internal/features/orders/domain"
)

// OrderTracking is the tracking view of a single order: the authoritative
// record plus the reconciled progress estimate.
type OrderTracking struct {
	// Order is the authoritative persisted record.
	Order orders.Order `json:"order"`
	// Progress is the displayed pipeline position.
	Progress domain.Progress `json:"progress"`
}

// TrackingService serves the anonymous tracking view: code lookup plus the
// time-based progress simulation reconciled against the authoritative status.
type TrackingService struct {
	source      ports.OrderSource
	prepWindow  time.Duration
	readyWindow time.Duration
	now         func() time.Time
}

// NewTrackingService creates a TrackingService with the given simulation
// windows.
func NewTrackingService(source ports.OrderSource, prepWindow, readyWindow time.Duration) *TrackingService {
	return &TrackingService{
		source:      source,
		prepWindow:  prepWindow,
		readyWindow: readyWindow,
		now:         time.Now,
	}
}

// TrackByCode looks an order up by code and attaches its reconciled progress.
func (s *TrackingService) TrackByCode(ctx context.Context, code string) (*OrderTracking, error) {
	order, err := s.source.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	estimated := domain.Estimate(order.CreatedAt, s.now(), s.prepWindow, s.readyWindow)

	return &OrderTracking{
		Order:    *order,
		Progress: domain.Reconcile(order.Status, estimated),
	}, nil
}
