package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ghost-kitchen/internal/features/tracking/service"

	orders "ghost-kitchen/internal/features/orders/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderSource serves canned orders for handler tests.
type stubOrderSource struct {
	byCode map[string]*orders.Order
	list   []orders.Order
}

func (s *stubOrderSource) GetByCode(ctx context.Context, code string) (*orders.Order, error) {
	order, ok := s.byCode[code]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubOrderSource) List(ctx context.Context) ([]orders.Order, error) {
	return s.list, nil
}

func setupApp(t *testing.T, source *stubOrderSource) (*fiber.App, *service.Watcher) {
	t.Helper()

	trackingSvc := service.NewTrackingService(source, 20*time.Second, 60*time.Second)
	watcher := service.NewWatcher(source, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go watcher.Run(ctx)

	h := NewTrackingHandler(trackingSvc, watcher)

	app := fiber.New()
	app.Get("/tracking/recent", h.RecentOrders)
	app.Get("/tracking/:code", h.TrackByCode)

	return app, watcher
}

func TestTrackingHandler_TrackByCode(t *testing.T) {
	source := &stubOrderSource{byCode: map[string]*orders.Order{
		"1234": {ID: "o1", Code: "1234", Status: orders.OrderStatusPreparing, CreatedAt: time.Now()},
	}}
	app, _ := setupApp(t, source)

	resp, err := app.Test(httptest.NewRequest("GET", "/tracking/1234", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var tracking service.OrderTracking
	require.NoError(t, json.Unmarshal(payload, &tracking))
	assert.Equal(t, "o1", tracking.Order.ID)
	assert.Equal(t, orders.OrderStatusPreparing, tracking.Progress.Status)
	assert.True(t, tracking.Progress.Simulated)
}

func TestTrackingHandler_TrackByCode_NotFound(t *testing.T) {
	app, _ := setupApp(t, &stubOrderSource{byCode: map[string]*orders.Order{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/tracking/9999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTrackingHandler_RecentOrders(t *testing.T) {
	source := &stubOrderSource{list: []orders.Order{
		{ID: "o2", Code: "2222"},
		{ID: "o1", Code: "1111"},
	}}
	app, _ := setupApp(t, source)

	require.Eventually(t, func() bool {
		resp, err := app.Test(httptest.NewRequest("GET", "/tracking/recent", nil))
		if err != nil {
			return false
		}
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		var got []orders.Order
		if err := json.Unmarshal(payload, &got); err != nil {
			return false
		}
		return len(got) == 2 && got[0].ID == "o2"
	}, time.Second, 10*time.Millisecond)
}
