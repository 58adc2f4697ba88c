package events

import (
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// Envelope is the wire shape shared by the broker and websocket subscribers.
type Envelope struct {
	Event       string    `json:"event"`
	OrderID     int64     `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	OccurredAt  time.Time `json:"occurredAt"`
	Status      string    `json:"status,omitempty"`
	// CustomerStatus is the guest vocabulary for Status.
	CustomerStatus string `json:"customerStatus,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	ChangedBy      string `json:"changedBy,omitempty"`
	Customer       string `json:"customer,omitempty"`
	Table          string `json:"table,omitempty"`
	Total          string `json:"total,omitempty"`
	Items          int    `json:"items,omitempty"`
}

// NewEnvelope flattens a domain event.
func NewEnvelope(event domain.Event) Envelope {
	env := Envelope{
		Event:       event.EventName(),
		OrderNumber: event.OrderNumber(),
		OccurredAt:  event.OccurredAt(),
	}
	switch e := event.(type) {
	case domain.OrderPlaced:
		env.OrderID = e.OrderID
		env.Status = string(domain.StatusPending)
		env.CustomerStatus = string(domain.StatusPending.ForCustomer())
		env.Customer = e.Customer
		env.Table = e.Table
		env.Total = e.Total
		env.Items = e.Items
	case domain.OrderStatusChanged:
		env.OrderID = e.OrderID
		env.Status = string(e.To)
		env.CustomerStatus = string(e.To.ForCustomer())
		env.PreviousStatus = string(e.From)
		env.ChangedBy = e.By
	}
	return env
}

// ForGuest drops the customer, table and staff details an anonymous tracker must not see.
func (e Envelope) ForGuest() Envelope {
	e.Customer = ""
	e.Table = ""
	e.ChangedBy = ""
	return e
}
