package ports

import (
	"context"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

// EventPublisher announces committed order changes. Delivery is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopEventPublisher discards events.
var NoopEventPublisher EventPublisher = noopEventPublisher{}

type noopEventPublisher struct{}

func (noopEventPublisher) Publish(context.Context, domain.Event) error { return nil }
