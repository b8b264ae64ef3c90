package service

import (
	"context"
	"testing"
	"time"

	orders "ghost-kitchen/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrepWindow  = 20 * time.Second
	testReadyWindow = 60 * time.Second
)

// stubOrderSource serves canned orders.
type stubOrderSource struct {
	byCode map[string]*orders.Order
	list   []orders.Order
	err    error
}

func (s *stubOrderSource) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order, ok := s.byCode[code]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubOrderSource) List(ctx context.Context) ([]orders.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func fixedNow(svc *TrackingService, now time.Time) {
	svc.now = func() time.Time { return now }
}

func TestTrackingService_TrackByCode_SimulatedPreparing(t *testing.T) {
	now := time.Now()
	source := &stubOrderSource{byCode: map[string]*orders.Order{
		"1234": {ID: "o1", Code: "1234", Status: orders.OrderStatusPreparing, CreatedAt: now.Add(-10 * time.Second)},
	}}

	svc := NewTrackingService(source, testPrepWindow, testReadyWindow)
	fixedNow(svc, now)

	tracking, err := svc.TrackByCode(context.Background(), "1234")
	require.NoError(t, err)

	assert.Equal(t, "o1", tracking.Order.ID)
	assert.Equal(t, orders.OrderStatusPreparing, tracking.Progress.Status)
	assert.True(t, tracking.Progress.Simulated)
	assert.InDelta(t, 61.5, tracking.Progress.Percent, 0.0001)
}

func TestTrackingService_TrackByCode_AuthoritativeWins(t *testing.T) {
	now := time.Now()
	// Order only seconds old, but the kitchen already delivered it.
	source := &stubOrderSource{byCode: map[string]*orders.Order{
		"1234": {ID: "o1", Code: "1234", Status: orders.OrderStatusDelivered, CreatedAt: now.Add(-5 * time.Second)},
	}}

	svc := NewTrackingService(source, testPrepWindow, testReadyWindow)
	fixedNow(svc, now)

	tracking, err := svc.TrackByCode(context.Background(), "1234")
	require.NoError(t, err)

	assert.Equal(t, orders.OrderStatusDelivered, tracking.Progress.Status)
	assert.Equal(t, 100.0, tracking.Progress.Percent)
	assert.False(t, tracking.Progress.Simulated)
}

func TestTrackingService_TrackByCode_SimulationAheadKeepsRecordTruth(t *testing.T) {
	now := time.Now()
	// An old order the kitchen never advanced: the estimate says DELIVERED
	// but the record stays READY.
	source := &stubOrderSource{byCode: map[string]*orders.Order{
		"1234": {ID: "o1", Code: "1234", Status: orders.OrderStatusReady, CreatedAt: now.Add(-5 * time.Minute)},
	}}

	svc := NewTrackingService(source, testPrepWindow, testReadyWindow)
	fixedNow(svc, now)

	tracking, err := svc.TrackByCode(context.Background(), "1234")
	require.NoError(t, err)

	assert.Equal(t, orders.OrderStatusReady, tracking.Order.Status)
	assert.Equal(t, orders.OrderStatusDelivered, tracking.Progress.Status)
	assert.True(t, tracking.Progress.Simulated)
}

func TestTrackingService_TrackByCode_NotFound(t *testing.T) {
	source := &stubOrderSource{byCode: map[string]*orders.Order{}}
	svc := NewTrackingService(source, testPrepWindow, testReadyWindow)

	tracking, err := svc.TrackByCode(context.Background(), "9999")
	assert.Nil(t, tracking)
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
}
