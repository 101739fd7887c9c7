package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeUnauthenticated     = "UNAUTHENTICATED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeMissingFields       = "MISSING_FIELDS"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidPrice        = "INVALID_PRICE"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeDuplicateItem       = "DUPLICATE_ITEM"
	ErrCodeDuplicateOrder      = "DUPLICATE_ORDER"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeNotCancellable      = "NOT_CANCELLABLE"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeNotFoundOrForbidden = "NOT_FOUND_OR_FORBIDDEN"
	ErrCodeNothingUpdated      = "NOTHING_UPDATED"
	ErrCodeUploadUnavailable   = "UPLOAD_UNAVAILABLE"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// DomainError is a business rule failure that is surfaced to the caller verbatim.
// Two domain errors are considered equal by errors.Is when their codes match,
// so a sentinel can be compared against an instance carrying a specific message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Errorf returns a copy of base with a formatted message.
func Errorf(base *DomainError, format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the domain code carried by err, or ErrCodeInternalError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}

// Common domain errors
var (
	ErrUnauthenticated     = NewDomainError(ErrCodeUnauthenticated, "Unauthorized")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "Seller role required")
	ErrMissingFields       = NewDomainError(ErrCodeMissingFields, "Missing productId, price, or quantity for a product")
	ErrInvalidInput        = NewDomainError(ErrCodeInvalidInput, "Invalid input")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be at least one")
	ErrInvalidPrice        = NewDomainError(ErrCodeInvalidPrice, "Invalid price value")
	ErrInvalidStatus       = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrValidation          = NewDomainError(ErrCodeValidation, "Validation failed")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "No products provided")
	ErrDuplicateItem       = NewDomainError(ErrCodeDuplicateItem, "This product is already in the cart")
	ErrDuplicateOrder      = NewDomainError(ErrCodeDuplicateOrder, "Order for this product already exists")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Order status transition not allowed")
	ErrNotCancellable      = NewDomainError(ErrCodeNotCancellable, "Order can no longer be cancelled")
	ErrNotFound            = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrProductNotFound     = NewDomainError(ErrCodeNotFound, "One or more products not found")
	ErrNotFoundOrForbidden = NewDomainError(ErrCodeNotFoundOrForbidden, "Order not found or you are not authorized to modify this order")
	ErrNothingUpdated      = NewDomainError(ErrCodeNothingUpdated, "No orders were updated; check the order IDs or paymentClear value")
	ErrUploadUnavailable   = NewDomainError(ErrCodeUploadUnavailable, "Image upload is not configured")
)
