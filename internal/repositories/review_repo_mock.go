package repositories

import (
	"sort"
	"sync"
	"time"

	"easyshop/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// Create adds a new review, enforcing one review per (user, product) pair.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.ProductID == review.ProductID {
			return ErrConflict
		}
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// GetByIDForUser returns a review only if it is owned by the given user.
func (r *MockReviewRepository) GetByIDForUser(id, userID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok || review.UserID != userID {
		return nil, ErrNotFound
	}
	return &review, nil
}

// GetByUserAndProduct returns the user's review of one product.
func (r *MockReviewRepository) GetByUserAndProduct(userID, productID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.UserID == userID && review.ProductID == productID {
			rv := review
			return &rv, nil
		}
	}
	return nil, ErrNotFound
}

// ListByProduct returns all reviews of one product, newest first.
func (r *MockReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

// ListByUser returns all reviews written by one user, newest first.
func (r *MockReviewRepository) ListByUser(userID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviews []models.Review
	for _, review := range r.reviews {
		if review.UserID == userID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews, nil
}

// Update modifies an existing review.
func (r *MockReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.reviews[review.ID]
	if !ok {
		return ErrNotFound
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// DeleteForUser removes a review only if it is owned by the given user.
func (r *MockReviewRepository) DeleteForUser(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review, ok := r.reviews[id]
	if !ok || review.UserID != userID {
		return ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}
