package application

import (
	"errors"
	"fmt"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals the checkout details or cart request were malformed.
	ErrInvalidInput = errors.New("invalid cart input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrMissingTable) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
