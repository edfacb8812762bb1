package services

import (
	"errors"
)

var (
	ErrSubmissionInProgress = errors.New("an order for this session is already being submitted")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidImport        = errors.New("invalid product data")
	ErrItemNotFound         = errors.New("item not found")
	ErrOutOfStock           = errors.New("item is out of stock")
	ErrDispatchFailed       = errors.New("failed to place order")
)

// ValidationError is a user-correctable problem with one input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
