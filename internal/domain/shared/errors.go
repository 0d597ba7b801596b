package shared

import "fmt"

// DomainError represents a domain-level error.
// Code identifies the error category and is mapped to a transport status by the
// interface layer; Message is safe to show to API callers.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches any not-found error regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
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

// Error codes
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeConflict             = "CONFLICT"
	CodeConcurrencyConflict  = "CONCURRENCY_CONFLICT"
	CodeAmountExceedsBalance = "AMOUNT_EXCEEDS_BALANCE"
	CodeDuplicateCashEntry   = "DUPLICATE_CASH_ENTRY"
	CodeAlreadyPaid          = "ALREADY_PAID"
	CodeLocked               = "RESOURCE_LOCKED"
	CodeDuplicateRequest     = "DUPLICATE_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
)

// Common domain errors
var (
	ErrNotFound             = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists        = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput         = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConflict             = NewDomainError(CodeConflict, "Operation conflicts with current state")
	ErrConcurrencyConflict  = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrAmountExceedsBalance = NewDomainError(CodeAmountExceedsBalance, "Amount exceeds the allowed balance")
	ErrDuplicateCashEntry   = NewDomainError(CodeDuplicateCashEntry, "Cash entry already exists for this branch and date")
	ErrAlreadyPaid          = NewDomainError(CodeAlreadyPaid, "Record is already paid")
	ErrLocked               = NewDomainError(CodeLocked, "Resource is locked")
	ErrDuplicateRequest     = NewDomainError(CodeDuplicateRequest, "Request was already processed")
	ErrUnauthorized         = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)

// NewValidationError creates a validation error with a formatted message
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError creates a not-found error for the named resource
func NewNotFoundError(resource string) *DomainError {
	return NewDomainError(CodeNotFound, resource+" not found")
}

// NewConflictError creates a conflict error with a formatted message
func NewConflictError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConflict, fmt.Sprintf(format, args...))
}
