package domain

import (
	"time"

	orders "ghost-kitchen/internal/features/orders/domain"
)

// Simulated progress bounds for the PREPARING window. The bar starts at 33%
// and approaches 90% until the window elapses; 100% is reserved for READY
// and beyond.
const (
	prepStartPercent = 33.0
	prepSpanPercent  = 57.0
	prepCapPercent   = 90.0
)

// Progress is the tracking view's pipeline position for an order. When
// Simulated is true the position is a time-based estimate, cosmetic pacing
// for a view without a finer-grained server signal, never a second source
// of truth.
type Progress struct {
	// Status is the displayed pipeline state.
	Status orders.OrderStatus `json:"status"`
	// Percent is the displayed progress, 0–100.
	Percent float64 `json:"percent"`
	// Simulated reports whether the position is a time-based estimate
	// rather than the authoritative order status.
	Simulated bool `json:"simulated"`
}

// Estimate computes the simulated pipeline position from the order's age.
// Within the preparation window the progress scales linearly from 33% toward
// 90%; past it the estimate is READY at 100%, and past the ready window it
// is DELIVERED at 100%. The windows are configuration, not kitchen SLAs.
func Estimate(createdAt, now time.Time, prepWindow, readyWindow time.Duration) Progress {
	elapsed := now.Sub(createdAt)

	switch {
	case elapsed > readyWindow:
		return Progress{Status: orders.OrderStatusDelivered, Percent: 100, Simulated: true}
	case elapsed > prepWindow:
		return Progress{Status: orders.OrderStatusReady, Percent: 100, Simulated: true}
	default:
		percent := prepStartPercent
		if elapsed > 0 && prepWindow > 0 {
			percent += prepSpanPercent * float64(elapsed) / float64(prepWindow)
		}
		if percent > prepCapPercent {
			percent = prepCapPercent
		}
		return Progress{Status: orders.OrderStatusPreparing, Percent: percent, Simulated: true}
	}
}

// Reconcile combines the authoritative order status with a simulated
// estimate. The authoritative status always wins once it is at or beyond the
// estimate; in particular a confirmed DELIVERED can never be regressed by
// the clock. An estimate running ahead of the kitchen is kept as-is: it is
// decorative pacing, and the authoritative status travels separately on the
// order record.
func Reconcile(authoritative orders.OrderStatus, estimated Progress) Progress {
	if authoritative == estimated.Status {
		return estimated
	}
	if authoritative.Rank() > estimated.Status.Rank() {
		return Progress{Status: authoritative, Percent: 100, Simulated: false}
	}
	return estimated
}
