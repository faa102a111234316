package crmerr

import (
	"errors"
)

// Code classifies a domain failure.
type Code string

const (
	CodeDuplicateEmail     Code = "DUPLICATE_EMAIL"
	CodeInvalidPhoneFormat Code = "INVALID_PHONE_FORMAT"
	CodeInvalidPrice       Code = "INVALID_PRICE"
	CodeNegativeStock      Code = "NEGATIVE_STOCK"
	CodeCustomerNotFound   Code = "CUSTOMER_NOT_FOUND"
	CodeEmptyProductList   Code = "EMPTY_PRODUCT_LIST"
	CodeNoValidProducts    Code = "NO_VALID_PRODUCTS"
	CodeTotalOutOfRange    Code = "TOTAL_OUT_OF_RANGE"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
)

// Error is a domain failure reported to callers as a structured result.
// Field is set when the failure concerns a single input field.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a crmerr.Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Code == e.Code
}

var (
	ErrDuplicateEmail     = New(CodeDuplicateEmail, "Email already exists")
	ErrInvalidPhoneFormat = New(CodeInvalidPhoneFormat, "Invalid phone format")
	ErrInvalidPrice       = New(CodeInvalidPrice, "Price must be positive")
	ErrPriceTooLarge      = New(CodeInvalidPrice, "Price must be less than 100000000")
	ErrNegativeStock      = New(CodeNegativeStock, "Stock cannot be negative")
	ErrCustomerNotFound   = New(CodeCustomerNotFound, "Invalid customer ID")
	ErrEmptyProductList   = New(CodeEmptyProductList, "At least one product required")
	ErrNoValidProducts    = New(CodeNoValidProducts, "Invalid product IDs")
	ErrTotalTooLarge      = New(CodeTotalOutOfRange, "Order total must be less than 100000000")
)

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Invalid creates an INVALID_ARGUMENT error for a single field.
func Invalid(field, message string) *Error {
	return &Error{Code: CodeInvalidArgument, Field: field, Message: message}
}

// As returns the domain error wrapped in err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}
