package repositories

import "easyshop/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByIDForUser(id, userID string) (*models.Review, error)
	GetByUserAndProduct(userID, productID string) (*models.Review, error)
	ListByProduct(productID string) ([]models.Review, error)
	ListByUser(userID string) ([]models.Review, error)
	Update(review *models.Review) error
	DeleteForUser(id, userID string) error
}
