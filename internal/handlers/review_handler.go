package handlers

import (
	"easyshop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public, read-only review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products/:id/reviews", h.HandleListProductReviews)
}

// RegisterProtectedRoutes registers the review routes that require auth.
func (h *ReviewHandler) RegisterProtectedRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/", h.HandleCreateReview)
	reviewRoutes.Get("/", h.HandleListMyReviews)
	reviewRoutes.Put("/:id", h.HandleUpdateReview)
	reviewRoutes.Delete("/:id", h.HandleDeleteReview)
}

// CreateReviewRequest represents the request body for creating a review.
type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"omitempty,max=500"`
}

// HandleCreateReview creates the authenticated user's review of a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	review, err := h.service.AddReview(currentUserID(c), req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListProductReviews returns all reviews of one product, newest first.
func (h *ReviewHandler) HandleListProductReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListProductReviews(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// HandleListMyReviews returns the authenticated user's reviews.
func (h *ReviewHandler) HandleListMyReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListUserReviews(currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// UpdateReviewRequest represents the request body for updating a review.
// Omitted fields keep their stored values.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=500"`
}

// HandleUpdateReview updates the authenticated user's own review.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var req UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	review, err := h.service.UpdateReview(currentUserID(c), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// HandleDeleteReview removes the authenticated user's own review.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.service.DeleteReview(currentUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Review deleted successfully",
	})
}
