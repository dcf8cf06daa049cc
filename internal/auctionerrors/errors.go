package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrNotFound = errors.New("record not found")
)

// Business logic errors
var (
	ErrForbidden          = errors.New("caller is not the resource owner")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAuctionHasBids     = errors.New("auction with bids cannot be cancelled")
)

// ValidationError carries field-level validation failures so handlers can
// report them in the errors part of the response envelope.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError returns the wrapped ValidationError, if any
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
