package domain

import "time"

// Event is the base interface for all order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	// OrderNumber identifies the order the event is about.
	OrderNumber() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
	Number    string
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderNumber returns the human-facing order number.
func (e BaseEvent) OrderNumber() string {
	return e.Number
}

// OrderPlaced is raised when a new order enters the kitchen queue.
type OrderPlaced struct {
	BaseEvent
	OrderID  int64
	Customer string
	Table    string
	Total    string
	Items    int
}

// EventName returns the event type identifier.
func (e OrderPlaced) EventName() string {
	return "orders.order.placed"
}

// OrderStatusChanged is raised after every lifecycle transition.
type OrderStatusChanged struct {
	BaseEvent
	OrderID int64
	From    Status
	To      Status
	By      string
}

// EventName returns the event type identifier.
func (e OrderStatusChanged) EventName() string {
	return "orders.order.status_changed"
}
