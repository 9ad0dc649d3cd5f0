package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailExists        = errors.New("email exists")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrVehicleUnavailable = errors.New("vehicle unavailable")
	ErrVehicleRented      = errors.New("vehicle has an active rental")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
