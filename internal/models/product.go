package models

import "time"

// Product represents a catalog entry. Quantity and InStock together are the
// authoritative inventory signal; they must only be mutated through
// ProductRepository.AdjustQuantity once orders are involved.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	CategoryID  string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"omitempty,uuid"`
	VendorID    string    `json:"vendor_id" gorm:"index;type:varchar(36)"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
