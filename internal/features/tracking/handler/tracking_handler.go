package handler

import (
	"errors"
	"net/http"

	"ghost-kitchen/internal/features/tracking/service"

	orders "ghost-kitchen/internal/features/orders/domain"

	"github.com/gofiber/fiber/v2"
)

// recentOrdersLimit caps the recent-orders sidebar of the tracking view.
const recentOrdersLimit = 10

// TrackingHandler handles HTTP requests for the order tracking view.
type TrackingHandler struct {
	trackingService *service.TrackingService
	watcher         *service.Watcher
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService *service.TrackingService, watcher *service.Watcher) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
		watcher:         watcher,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// TrackByCode godoc
// @Summary Track an order by its code
// @Description Returns the authoritative order record plus the displayed progress, which may be a time-based estimate.
// @Tags tracking
// @Produce json
// @Param code path string true "Order code"
// @Success 200 {object} service.OrderTracking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tracking/{code} [get]
func (h *TrackingHandler) TrackByCode(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "order code is required",
			RayID:   rayID(c),
		})
	}

	tracking, err := h.trackingService.TrackByCode(c.Context(), code)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "order not found",
				RayID:   rayID(c),
			})
		}

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	return c.JSON(tracking)
}

// RecentOrders godoc
// @Summary Recent orders
// @Description Returns the most recent orders from the poll-based snapshot.
// @Tags tracking
// @Produce json
// @Success 200 {array} domain.Order
// @Router /tracking/orders [get]
func (h *TrackingHandler) RecentOrders(c *fiber.Ctx) error {
	return c.JSON(h.watcher.Recent(recentOrdersLimit))
}
