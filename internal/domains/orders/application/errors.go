package application

import (
	"errors"
	"fmt"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrEmptyItemName) ||
		errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrMissingTable) ||
		errors.Is(err, domain.ErrInvalidType) ||
		errors.Is(err, domain.ErrNegativeTaxRate) ||
		errors.Is(err, domain.ErrTotalsMismatch) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
