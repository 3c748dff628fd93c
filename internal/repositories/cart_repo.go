package repositories

import "easyshop/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserID returns the user's cart or ErrNotFound if none exists yet.
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// ReplaceItems swaps the cart's entire line-item list. A nil or empty
	// slice empties the cart.
	ReplaceItems(cartID string, items []models.CartItem) error
}
