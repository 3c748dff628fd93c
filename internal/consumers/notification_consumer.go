package consumers

import (
	"encoding/json"
	"fmt"
	"log"

	"easyshop/internal/services"
	"easyshop/pkg/mailer"

	amqp "github.com/streadway/amqp"
)

// NotificationConsumer turns domain events into emails. It runs off the
// request path: a notification that cannot be sent never affects the
// operation that produced the event.
type NotificationConsumer struct {
	mailer *mailer.Mailer
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(m *mailer.Mailer) *NotificationConsumer {
	return &NotificationConsumer{
		mailer: m,
	}
}

// Handle processes one delivery. Malformed or unroutable messages are
// logged and dropped (returning nil acks them); only transient send
// failures return an error so the message is redelivered.
func (c *NotificationConsumer) Handle(msg amqp.Delivery) error {
	switch msg.RoutingKey {
	case services.EventOrderPlaced:
		return c.handleOrderPlaced(msg.Body)
	case services.EventUserRegistered:
		return c.handleUserRegistered(msg.Body)
	default:
		log.Printf("Ignoring message with unknown routing key %q", msg.RoutingKey)
		return nil
	}
}

func (c *NotificationConsumer) handleOrderPlaced(body []byte) error {
	var event services.OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Dropping malformed order placed event: %v", err)
		return nil
	}
	if event.UserEmail == "" {
		log.Printf("Order placed event for order %s has no email, skipping notification", event.OrderID)
		return nil
	}

	subject := "Your EasyShop order has been placed"
	text := fmt.Sprintf(
		"Hi %s,\n\nYour order %s has been placed successfully.\nTotal: %.2f\nStatus: %s\n\nBest regards,\nEasyShop Team",
		event.UserName, event.OrderID, event.TotalPrice, event.Status,
	)
	return c.mailer.Send(event.UserEmail, subject, text)
}

func (c *NotificationConsumer) handleUserRegistered(body []byte) error {
	var event services.UserRegisteredEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Dropping malformed user registered event: %v", err)
		return nil
	}
	if event.UserEmail == "" {
		return nil
	}

	subject := "Welcome to EasyShop!"
	text := fmt.Sprintf(
		"Hi %s,\n\nWelcome to EasyShop! Your account has been created successfully.\n\nBest regards,\nEasyShop Team",
		event.UserName,
	)
	return c.mailer.Send(event.UserEmail, subject, text)
}
