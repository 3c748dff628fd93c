package handlers

import (
	"easyshop/internal/middleware"
	"easyshop/internal/models"
	"easyshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the customer order routes. All require auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleListMyOrders)
	orderRoutes.Get("/:id", h.HandleGetMyOrder)
	orderRoutes.Post("/:id/cancel", h.HandleCancelMyOrder)
}

// RegisterAdminRoutes registers the privileged order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/admin/orders")
	orderRoutes.Get("/", h.HandleListAllOrders)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandlePlaceOrder converts the authenticated user's cart into an order.
// The cart is the sole input; there is no request body.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	order, err := h.service.PlaceOrder(currentUserID(c))
	middleware.RecordOrderOperation("place", err == nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListMyOrders returns the authenticated user's orders, newest first.
func (h *OrderHandler) HandleListMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListUserOrders(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetMyOrder returns a single order owned by the authenticated user.
func (h *OrderHandler) HandleGetMyOrder(c *fiber.Ctx) error {
	order, err := h.service.GetUserOrder(currentUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleCancelMyOrder cancels the user's own pending order and restores
// its stock.
func (h *OrderHandler) HandleCancelMyOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(currentUserID(c), c.Params("id"))
	middleware.RecordOrderOperation("cancel", err == nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleListAllOrders returns one page of orders across all users,
// optionally filtered by status.
func (h *OrderHandler) HandleListAllOrders(c *fiber.Ctx) error {
	status := c.Query("status")
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	orders, pagination, err := h.service.ListAllOrders(status, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"orders":     orders,
		"pagination": pagination,
	})
}

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateOrderStatus moves an order to the requested status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.UpdateOrderStatus(c.Params("id"), models.OrderStatus(req.Status))
	middleware.RecordOrderOperation("status_update", err == nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
