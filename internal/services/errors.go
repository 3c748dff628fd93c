package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions callers are expected to branch on.
// Handlers map each of these to a stable HTTP status and code.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("only pending orders can be cancelled")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrLockedTerminalState = errors.New("order status can no longer be changed")
	ErrConflict            = errors.New("conflicting concurrent update")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAlreadyReviewed     = errors.New("product already reviewed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// InsufficientStockError identifies the product whose available quantity
// cannot cover the requested amount.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", name, e.Requested, e.Available)
}
