package service

import (
	"errors"

	"github.com/tonelab-collective/booking/internal/pkg/bookingcheck"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrDuplicateBooking = bookingcheck.ErrDuplicateBooking
	ErrBookingNotFound  = errors.New("booking not found")
	ErrContentNotFound  = errors.New("content not found")
	ErrEmptyContent     = errors.New("content is required")

	ErrInvalidPassword = errors.New("invalid password")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ValidationError carries every violated field. errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Fields bookingcheck.FieldErrors
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Fields.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }
