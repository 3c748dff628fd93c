package handlers

import (
	"errors"
	"fmt"
	"log"

	"easyshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to their stable HTTP status and code.
// Anything unrecognised is reported as a generic server error without
// leaking internal detail.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *services.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":       "insufficient_stock",
			"message":    stockErr.Error(),
			"product_id": stockErr.ProductID,
		})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "empty_cart",
			"message": "Cart is empty",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":    "not_found",
			"message": "Not found",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "invalid_transition",
			"message": "Only pending orders can be cancelled",
		})
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "invalid_status",
			"message": "Invalid order status",
		})
	case errors.Is(err, services.ErrLockedTerminalState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "locked_terminal_state",
			"message": "Order status can no longer be changed",
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":    "conflict",
			"message": "The order could not be placed due to a concurrent stock update",
		})
	case errors.Is(err, services.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "invalid_quantity",
			"message": "Quantity must be at least 1",
		})
	case errors.Is(err, services.ErrAlreadyReviewed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "already_reviewed",
			"message": "You have already reviewed this product",
		})
	case errors.Is(err, services.ErrInvalidRating):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    "invalid_rating",
			"message": "Rating must be between 1 and 5",
		})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":    "email_taken",
			"message": "Email already registered",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    "invalid_credentials",
			"message": "Invalid credentials",
		})
	default:
		log.Printf("Unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"code":    "server_error",
			"message": "Server error",
		})
	}
}

// currentUserID returns the authenticated user's ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// respondValidationError renders validator failures field by field.
func respondValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
