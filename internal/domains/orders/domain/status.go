package domain

import (
	"errors"
	"strings"
)

// Status enumerates the kitchen-facing order lifecycle.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPreparing Status = "Preparing"
	StatusReady     Status = "Ready"
	StatusServed    Status = "Served"
	StatusCancelled Status = "Cancelled"
)

// CustomerStatus is the reduced vocabulary shown to guests.
type CustomerStatus string

const (
	CustomerPreparing CustomerStatus = "Preparing"
	CustomerReady     CustomerStatus = "Ready"
	CustomerDelivered CustomerStatus = "Delivered"
	CustomerCancelled CustomerStatus = "Cancelled"
)

// StatusAll is the list filter that matches every status.
const StatusAll = "All"

var (
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusServed, StatusCancelled},
	StatusServed:    nil,
	StatusCancelled: nil,
}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled}
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range Statuses() {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status is known.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// Next returns the statuses reachable in one step.
func (s Status) Next() []Status {
	return append([]Status(nil), transitions[s]...)
}

// CanTransitionTo reports whether to is an outgoing edge of s.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ForCustomer maps a kitchen status onto the guest vocabulary.
func (s Status) ForCustomer() CustomerStatus {
	switch s {
	case StatusReady:
		return CustomerReady
	case StatusServed:
		return CustomerDelivered
	case StatusCancelled:
		return CustomerCancelled
	default:
		return CustomerPreparing
	}
}

// ParseCustomerStatus resolves a guest-facing status name case-insensitively.
func ParseCustomerStatus(raw string) (CustomerStatus, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range []CustomerStatus{CustomerPreparing, CustomerReady, CustomerDelivered, CustomerCancelled} {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Statuses expands a guest-facing status into the kitchen statuses it covers.
func (c CustomerStatus) Statuses() []Status {
	var out []Status
	for _, s := range Statuses() {
		if s.ForCustomer() == c {
			out = append(out, s)
		}
	}
	return out
}
