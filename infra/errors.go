package infra

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrServer     = errors.New("server error")
)

func NewValidationError(details string) error {
	return fmt.Errorf("%w: %s", ErrValidation, details)
}

func NewNetworkError(details string) error {
	return fmt.Errorf("%w: %s", ErrNetwork, details)
}

func NewServerError(details string) error {
	return fmt.Errorf("%w: %s", ErrServer, details)
}

// IsValidation reports whether err was caused by bad user input, which is
// surfaced synchronously and never retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
