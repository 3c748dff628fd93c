package services

import (
	"errors"

	"easyshop/internal/models"
	"easyshop/internal/repositories"

	"github.com/google/uuid"
)

// ReviewService handles business logic for product reviews. A user can
// review each product at most once.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// AddReview creates the user's review of a product.
func (s *ReviewService) AddReview(userID, productID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.reviewRepo.GetByUserAndProduct(userID, productID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		// A concurrent create for the same pair loses to the unique index.
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return review, nil
}

// ListProductReviews returns all reviews of one product, newest first.
func (s *ReviewService) ListProductReviews(productID string) ([]models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviewRepo.ListByProduct(productID)
}

// ListUserReviews returns all reviews written by the user, newest first.
func (s *ReviewService) ListUserReviews(userID string) ([]models.Review, error) {
	return s.reviewRepo.ListByUser(userID)
}

// UpdateReview updates the user's own review. Zero-value rating or empty
// comment keep the stored values.
func (s *ReviewService) UpdateReview(userID, reviewID string, rating int, comment string) (*models.Review, error) {
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetByIDForUser(reviewID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if rating != 0 {
		review.Rating = rating
	}
	if comment != "" {
		review.Comment = comment
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the user's own review.
func (s *ReviewService) DeleteReview(userID, reviewID string) error {
	if err := s.reviewRepo.DeleteForUser(reviewID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
