package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrRecordNotFound      = errors.New("payment record not found")
	ErrInvalidPayment      = errors.New("invalid payment record")
	ErrInvalidDisbursement = errors.New("disbursement requires a non-zero tax amount")
	ErrNegativeBalance     = errors.New("remaining balance must not be negative")
	ErrMalformedImport     = errors.New("import data is not a JSON array of payment records")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeRecordNotFound        = "RECORD_NOT_FOUND"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeDeserializationFailed = "DESERIALIZATION_FAILED"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapRecordNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeRecordNotFound,
		fmt.Sprintf("Payment record with ID %s not found", id),
		ErrRecordNotFound,
	)
}

func WrapValidationFailed(message string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidationFailed,
		message,
		err,
	)
}

func WrapDeserializationFailed(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDeserializationFailed,
		"could not parse imported ledger data",
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"persistence operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

// IsNotFound reports whether err is (or wraps) a missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// IsValidation reports whether err is (or wraps) a validation failure.
func IsValidation(err error) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == ErrCodeValidationFailed
	}
	return false
}
