package repositories

import "easyshop/internal/models"

// ProductRepository defines the interface for product data access.
//
// AdjustQuantity is the inventory ledger primitive: it applies delta
// (negative to take stock, positive to restore it) as a single conditional
// update that refuses to go below zero, returning ErrConflict instead.
// Workflows must never read-modify-write the quantity field themselves.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	AdjustQuantity(id string, delta int) error
}
