package repositories

import "gorm.io/gorm"

// TxRepos are the repositories visible inside one atomic unit. Everything
// written through them commits together or not at all.
type TxRepos struct {
	Orders   OrderRepository
	Carts    CartRepository
	Products ProductRepository
}

// UnitOfWork groups multi-document writes into one atomic unit. The order
// workflow stays transaction-agnostic by only ever talking to the TxRepos
// handed to fn; returning an error from fn undoes every write in the unit.
type UnitOfWork interface {
	Do(fn func(r *TxRepos) error) error
}

// GORMUnitOfWork implements UnitOfWork on top of a database transaction.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{
		db: db,
	}
}

// Do runs fn inside a single database transaction.
func (u *GORMUnitOfWork) Do(fn func(r *TxRepos) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TxRepos{
			Orders:   NewGORMOrderRepository(tx),
			Carts:    NewGORMCartRepository(tx),
			Products: NewGORMProductRepository(tx),
		})
	})
}
