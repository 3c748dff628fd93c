package repositories

import (
	"sync"

	"easyshop/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by cart ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the cart owned by the given user.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cart := range r.carts {
		if cart.UserID == userID {
			c := cart
			c.Items = append([]models.CartItem(nil), cart.Items...)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	for i := range cart.Items {
		if cart.Items[i].ID == "" {
			cart.Items[i].ID = uuid.New().String()
		}
		cart.Items[i].CartID = cart.ID
	}
	stored := *cart
	stored.Items = append([]models.CartItem(nil), cart.Items...)
	r.carts[cart.ID] = stored
	return nil
}

// ReplaceItems swaps the cart's whole item list.
func (r *MockCartRepository) ReplaceItems(cartID string, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return ErrNotFound
	}
	replaced := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.CartID = cartID
		replaced = append(replaced, item)
	}
	cart.Items = replaced
	r.carts[cartID] = cart
	return nil
}

func (r *MockCartRepository) snapshot() map[string]models.Cart {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Cart, len(r.carts))
	for id, cart := range r.carts {
		c := cart
		c.Items = append([]models.CartItem(nil), cart.Items...)
		snap[id] = c
	}
	return snap
}

func (r *MockCartRepository) restore(snap map[string]models.Cart) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = snap
}
