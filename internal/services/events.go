package services

// EventPublisher delivers domain events to interested consumers. Publishing
// is best-effort: callers log failures and move on, it never fails the
// operation that emitted the event.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Routing keys for published events.
const (
	EventOrderPlaced    = "order.placed"
	EventUserRegistered = "user.registered"
)

// OrderPlacedEvent is emitted after an order commits.
type OrderPlacedEvent struct {
	OrderID    string  `json:"order_id"`
	UserID     string  `json:"user_id"`
	UserEmail  string  `json:"user_email"`
	UserName   string  `json:"user_name"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

// UserRegisteredEvent is emitted after a new account is created.
type UserRegisteredEvent struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}
