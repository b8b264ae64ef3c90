package handler

import (
	"errors"
	"net/http"

	"ghost-kitchen/internal/core/auth"
	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/features/orders/domain"
	"ghost-kitchen/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the order lifecycle service.
	service *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id,omitempty"`
}

// CreateOrderItemRequest is a requested line item. Prices come from the
// catalog, never from the client.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest represents the request body for creating an order.
type CreateOrderRequest struct {
	CustomerID string                   `json:"customerId,omitempty"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest represents the request body for a status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// CreateOrder handles POST /orders.
// @Summary Create a new order
// @Description Validates the cart against the catalog, snapshots prices and creates the order in PREPARING with a 4-digit tracking code.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "Order items"
// @Success 201 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	items := make([]service.CreateItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.service.CreateOrder(c.Context(), req.CustomerID, items)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// ListOrders handles GET /orders. Route is gated to cook/admin.
// @Summary List all orders
// @Description Returns every order, newest first. Kitchen staff and admins only.
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 403 {object} ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(orders)
}

// ListHistory handles GET /orders/history for the authenticated customer.
// @Summary Get my order history
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} ErrorResponse
// @Router /orders/history [get]
func (h *OrderHandler) ListHistory(c *fiber.Ctx) error {
	actor := auth.ActorFromCtx(c)

	orders, err := h.service.ListCustomerOrders(c.Context(), actor.ID)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(orders)
}

// GetOrderByCode handles GET /orders/code/:code. Public anonymous lookup.
// @Summary Get order by tracking code
// @Tags orders
// @Produce json
// @Param code path string true "Order code"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /orders/code/{code} [get]
func (h *OrderHandler) GetOrderByCode(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByCode(c.Context(), c.Params("code"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(order)
}

// GetOrder handles GET /orders/:id.
// @Summary Get order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus handles PATCH /orders/:id/status. Route is gated to cook/admin.
// @Summary Advance order status
// @Description Moves the order along PREPARING→READY→DELIVERED. Repeating the current status is a no-op.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param status body UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid status value. Must be PREPARING, READY or DELIVERED",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.AdvanceStatus(c.Context(), c.Params("id"), status, auth.ActorFromCtx(c))
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(order)
}

// writeError maps service errors to HTTP responses. Forbidden responses stay
// generic; validation and not-found errors are shown as-is.
func (h *OrderHandler) writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrStatusConflict):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
		msg = "Operation not permitted"
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		status = http.StatusServiceUnavailable
		msg = "Could not assign an order code, please retry"
	}

	if status == http.StatusInternalServerError {
		logger.Get().Error("Order request failed",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}
