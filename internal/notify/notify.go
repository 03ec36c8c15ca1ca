package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Reminder is a pending session reminder for an order
type Reminder struct {
	OrderID uuid.UUID `json:"orderId"`
	FireAt  time.Time `json:"fireAt"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
}

// Scheduler schedules and cancels order reminders. Fire times already in the
// past are silently skipped, never scheduled.
type Scheduler interface {
	Schedule(ctx context.Context, orderID uuid.UUID, fireAt time.Time, title, body string) error
	Cancel(ctx context.Context, orderID uuid.UUID) error
	CancelAll(ctx context.Context) error
}
