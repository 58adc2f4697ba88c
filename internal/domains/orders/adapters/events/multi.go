package events

import (
	"context"
	"errors"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

// Multi publishes to every wrapped publisher and joins their errors.
type Multi []ports.EventPublisher

func (m Multi) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, publisher := range m {
		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ ports.EventPublisher = Multi(nil)
