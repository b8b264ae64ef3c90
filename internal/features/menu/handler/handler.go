package handler

import (
	"errors"
	"net/http"

	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/features/menu/domain"
	"ghost-kitchen/internal/features/menu/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MenuHandler handles HTTP requests for the menu.
type MenuHandler struct {
	service ports.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service ports.MenuService) *MenuHandler {
	return &MenuHandler{
		service: service,
	}
}

// UpsertProductRequest represents the request body for creating or replacing a product.
type UpsertProductRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// SetAvailabilityRequest represents the request body for toggling availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// UpsertProduct handles POST /menu/products.
// @Summary Create or replace a menu product
// @Description Creates a product, or replaces it when the id already exists. Admin only.
// @Tags Menu
// @Accept json
// @Produce json
// @Param product body UpsertProductRequest true "Product details"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/products [post]
func (h *MenuHandler) UpsertProduct(c *fiber.Ctx) error {
	var req UpsertProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := h.service.UpsertProduct(c.Context(), req.ID, req.Name, req.Price, req.Available)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidName) || errors.Is(err, domain.ErrInvalidPrice) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Get().Error("Failed to upsert product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusCreated).JSON(product)
}

// ListProducts handles GET /menu.
// @Summary List the menu
// @Description Retrieves every product on the menu, including unavailable ones.
// @Tags Menu
// @Produce json
// @Success 200 {array} domain.Product
// @Failure 500 {object} map[string]string
// @Router /menu [get]
func (h *MenuHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list products", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(products)
}

// GetProduct handles GET /menu/products/:id.
// @Summary Get a menu product
// @Description Retrieves a single product by id.
// @Tags Menu
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/products/{id} [get]
func (h *MenuHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to get product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(product)
}

// SetAvailability handles PATCH /menu/products/:id/availability.
// @Summary Toggle product availability
// @Description Marks a product as orderable or not without removing it from the menu. Admin only.
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param availability body SetAvailabilityRequest true "Availability flag"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/products/{id}/availability [patch]
func (h *MenuHandler) SetAvailability(c *fiber.Ctx) error {
	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := h.service.SetAvailability(c.Context(), c.Params("id"), req.Available)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to update availability", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(product)
}

// RemoveProduct handles DELETE /menu/products/:id.
// @Summary Remove a menu product
// @Description Deletes a product from the menu. Admin only.
// @Tags Menu
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /menu/products/{id} [delete]
func (h *MenuHandler) RemoveProduct(c *fiber.Ctx) error {
	if err := h.service.RemoveProduct(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		logger.Get().Error("Failed to remove product", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Product removed successfully",
	})
}
