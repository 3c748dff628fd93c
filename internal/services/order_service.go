package services

import (
	"encoding/json"
	"errors"
	"log"

	"easyshop/internal/models"
	"easyshop/internal/repositories"

	"github.com/google/uuid"
)

// Pagination describes one page of an admin listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// OrderService orchestrates the cart-to-order workflow and the order status
// state machine. Every write path that touches more than one record runs
// inside a unit of work so the order, cart and inventory can never be
// observed half-updated.
type OrderService struct {
	uow       repositories.UnitOfWork
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case events are skipped.
func NewOrderService(uow repositories.UnitOfWork, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// PlaceOrder converts the user's cart into a pending order: it snapshots
// name and price per line, validates every line against current stock before
// mutating anything, creates the order, takes the stock and empties the
// cart, all in one atomic unit. On success an order-placed event is emitted
// outside the unit, best-effort.
func (s *OrderService) PlaceOrder(userID string) (*models.Order, error) {
	var order *models.Order
	err := s.uow.Do(func(r *repositories.TxRepos) error {
		cart, err := r.Carts.GetByUserID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		var totalPrice float64
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, err := r.Products.GetByID(line.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return &InsufficientStockError{ProductID: line.ProductID, Requested: line.Quantity}
				}
				return err
			}
			if !product.InStock || product.Quantity < line.Quantity {
				return &InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Quantity,
				}
			}

			lineTotal := product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ID:           uuid.New().String(),
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductPrice: product.Price,
				Quantity:     line.Quantity,
				TotalPrice:   lineTotal,
			})
			totalPrice += lineTotal
		}

		order = &models.Order{
			ID:         uuid.New().String(),
			UserID:     userID,
			Items:      items,
			TotalPrice: totalPrice,
			Status:     models.StatusPending,
		}
		if err := r.Orders.Create(order); err != nil {
			return err
		}

		for _, item := range items {
			if err := r.Products.AdjustQuantity(item.ProductID, -item.Quantity); err != nil {
				// A concurrent order won the remaining stock between our
				// check and this decrement; the whole unit rolls back.
				if errors.Is(err, repositories.ErrConflict) {
					return ErrConflict
				}
				return err
			}
		}

		return r.Carts.ReplaceItems(cart.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderPlaced(order)
	return order, nil
}

// ListUserOrders returns all orders owned by the user, newest first.
func (s *OrderService) ListUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetUserOrder returns a single order, scoped to its owner.
func (s *OrderService) GetUserOrder(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// CancelOrder transitions the user's own pending order to cancelled and
// hands every line item's quantity back to inventory. The status write and
// all restorations commit together or not at all.
func (s *OrderService) CancelOrder(userID, orderID string) (*models.Order, error) {
	var cancelled *models.Order
	err := s.uow.Do(func(r *repositories.TxRepos) error {
		order, err := r.Orders.GetByIDForUser(orderID, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status != models.StatusPending {
			return ErrInvalidTransition
		}
		if err := r.Orders.UpdateStatus(order.ID, models.StatusCancelled); err != nil {
			return err
		}
		if err := restoreInventory(r.Products, order.Items); err != nil {
			return err
		}
		order.Status = models.StatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ListAllOrders returns one page of orders across all users, optionally
// filtered by status. Intended for privileged callers.
func (s *OrderService) ListAllOrders(status string, page, limit int) ([]models.Order, *Pagination, error) {
	if status != "" && !models.ValidStatus(models.OrderStatus(status)) {
		return nil, nil, ErrInvalidStatus
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := s.orderRepo.List(models.OrderStatus(status), page, limit)
	if err != nil {
		return nil, nil, err
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	return orders, &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// UpdateOrderStatus moves an order to the target status on behalf of a
// privileged caller. Delivered and cancelled orders are locked. Any
// transition into cancelled restores the order's inventory in the same
// atomic unit, since stock is only ever taken at placement.
func (s *OrderService) UpdateOrderStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var updated *models.Order
	err := s.uow.Do(func(r *repositories.TxRepos) error {
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status == models.StatusDelivered && status != models.StatusDelivered {
			return ErrLockedTerminalState
		}
		if order.Status == models.StatusCancelled {
			return ErrLockedTerminalState
		}
		if err := r.Orders.UpdateStatus(order.ID, status); err != nil {
			return err
		}
		if status == models.StatusCancelled {
			if err := restoreInventory(r.Products, order.Items); err != nil {
				return err
			}
		}
		order.Status = status
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// restoreInventory hands each line item's quantity back to its product.
// A product that has since been removed from the catalog has no stock to
// restore and is skipped.
func restoreInventory(products repositories.ProductRepository, items []models.OrderItem) error {
	for _, item := range items {
		if err := products.AdjustQuantity(item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		return
	}

	event := OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
	}
	if user, err := s.userRepo.GetByID(order.UserID); err == nil {
		event.UserEmail = user.Email
		event.UserName = user.Name
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order placed event for order %s: %v", order.ID, err)
		return
	}
	go func() {
		if err := s.publisher.Publish(EventOrderPlaced, body); err != nil {
			log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
		}
	}()
}
