package repositories

import "easyshop/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// GetByIDForUser scopes the lookup to the owning user; an order owned by
	// someone else is ErrNotFound, not a permission error.
	GetByIDForUser(id, userID string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	// List returns one page of orders, newest first, optionally filtered by
	// status (empty status means all), plus the total match count.
	List(status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(id string, status models.OrderStatus) error
}
