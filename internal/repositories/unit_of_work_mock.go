package repositories

import "sync"

// MockUnitOfWork implements UnitOfWork over the in-memory repositories.
// State is snapshotted before fn runs and restored when fn fails, so tests
// observe the same all-or-nothing behavior as a database transaction. The
// mutex serializes units the way the database serializes conflicting
// transactions.
type MockUnitOfWork struct {
	Orders   *MockOrderRepository
	Carts    *MockCartRepository
	Products *MockProductRepository

	// WrapRepos, when set, lets tests substitute fault-injecting
	// repositories into the transactional view.
	WrapRepos func(r *TxRepos) *TxRepos

	mu sync.Mutex
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork.
func NewMockUnitOfWork(orders *MockOrderRepository, carts *MockCartRepository, products *MockProductRepository) *MockUnitOfWork {
	return &MockUnitOfWork{
		Orders:   orders,
		Carts:    carts,
		Products: products,
	}
}

// Do runs fn against the in-memory repositories, rolling back on error.
func (u *MockUnitOfWork) Do(fn func(r *TxRepos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	ordersSnap := u.Orders.snapshot()
	cartsSnap := u.Carts.snapshot()
	productsSnap := u.Products.snapshot()

	repos := &TxRepos{Orders: u.Orders, Carts: u.Carts, Products: u.Products}
	if u.WrapRepos != nil {
		repos = u.WrapRepos(repos)
	}

	if err := fn(repos); err != nil {
		u.Orders.restore(ordersSnap)
		u.Carts.restore(cartsSnap)
		u.Products.restore(productsSnap)
		return err
	}
	return nil
}
