package application

import (
	"errors"
	"fmt"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid menu item input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrPricePrecision) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrDuplicateID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
