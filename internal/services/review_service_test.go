package services_test

import (
	"testing"

	"easyshop/internal/repositories"
	"easyshop/internal/services"

	"github.com/stretchr/testify/assert"
)

func newReviewFixture(t *testing.T) (*services.ReviewService, *repositories.MockReviewRepository) {
	t.Helper()
	reviews := repositories.NewMockReviewRepository()
	products := repositories.NewMockProductRepository()
	seedProduct(t, products, "prod-1", "Laptop", 1200.0, 3)
	return services.NewReviewService(reviews, products), reviews
}

func TestAddReview(t *testing.T) {
	service, _ := newReviewFixture(t)

	review, err := service.AddReview("user-1", "prod-1", 4, "Solid machine")

	assert.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, "user-1", review.UserID)
	assert.Equal(t, "prod-1", review.ProductID)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Solid machine", review.Comment)
}

func TestAddReview_OncePerProduct(t *testing.T) {
	service, _ := newReviewFixture(t)

	_, err := service.AddReview("user-1", "prod-1", 4, "")
	assert.NoError(t, err)

	_, err = service.AddReview("user-1", "prod-1", 5, "changed my mind")
	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)

	// A different user may still review the same product.
	_, err = service.AddReview("user-2", "prod-1", 2, "")
	assert.NoError(t, err)
}

func TestAddReview_UnknownProduct(t *testing.T) {
	service, _ := newReviewFixture(t)

	_, err := service.AddReview("user-1", "missing", 4, "")

	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAddReview_InvalidRating(t *testing.T) {
	service, _ := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.AddReview("user-1", "prod-1", rating, "")
		assert.ErrorIs(t, err, services.ErrInvalidRating)
	}
}

func TestListProductReviews(t *testing.T) {
	service, _ := newReviewFixture(t)

	_, err := service.AddReview("user-1", "prod-1", 4, "")
	assert.NoError(t, err)
	_, err = service.AddReview("user-2", "prod-1", 2, "")
	assert.NoError(t, err)

	reviews, err := service.ListProductReviews("prod-1")
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = service.ListProductReviews("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListUserReviews(t *testing.T) {
	service, _ := newReviewFixture(t)

	_, err := service.AddReview("user-1", "prod-1", 4, "")
	assert.NoError(t, err)

	mine, err := service.ListUserReviews("user-1")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := service.ListUserReviews("user-2")
	assert.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateReview_PartialUpdate(t *testing.T) {
	service, _ := newReviewFixture(t)

	review, err := service.AddReview("user-1", "prod-1", 4, "Solid machine")
	assert.NoError(t, err)

	// A zero rating keeps the stored rating; only the comment changes.
	updated, err := service.UpdateReview("user-1", review.ID, 0, "Even better after a month")
	assert.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Even better after a month", updated.Comment)

	// An empty comment keeps the stored comment; only the rating changes.
	updated, err = service.UpdateReview("user-1", review.ID, 5, "")
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Even better after a month", updated.Comment)
}

func TestUpdateReview_OwnershipScoped(t *testing.T) {
	service, _ := newReviewFixture(t)

	review, err := service.AddReview("user-1", "prod-1", 4, "")
	assert.NoError(t, err)

	_, err = service.UpdateReview("user-2", review.ID, 1, "sabotage")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = service.UpdateReview("user-1", review.ID, 9, "")
	assert.ErrorIs(t, err, services.ErrInvalidRating)
}

func TestDeleteReview(t *testing.T) {
	service, reviews := newReviewFixture(t)

	review, err := service.AddReview("user-1", "prod-1", 4, "")
	assert.NoError(t, err)

	// Someone else's delete does not touch the review.
	err = service.DeleteReview("user-2", review.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = reviews.GetByIDForUser(review.ID, "user-1")
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteReview("user-1", review.ID))
	assert.ErrorIs(t, service.DeleteReview("user-1", review.ID), services.ErrNotFound)
}
