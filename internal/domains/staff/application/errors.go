package application

import (
	"errors"
	"fmt"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid staff input")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
	// ErrInvalidCredentials is returned by Login for any unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrInvalidPosition) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ports.ErrInvalidToken) ||
		errors.Is(err, ports.ErrSessionNotFound) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
