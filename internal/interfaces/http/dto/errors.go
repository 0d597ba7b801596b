package dto

import (
	"net/http"

	"github.com/bookkeeping/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeValidation     = "ERR_VALIDATION"
	ErrCodeBadRequest     = "ERR_BAD_REQUEST"
	ErrCodeInvalidJSON    = "ERR_INVALID_JSON"
	ErrCodeRequestTooBig  = "ERR_REQUEST_TOO_LARGE"
	ErrCodeMissingKey     = "ERR_MISSING_IDEMPOTENCY_KEY"
	ErrCodeUnauthorized   = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired   = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid   = "ERR_TOKEN_INVALID"
	ErrCodeServiceUnavail = "ERR_SERVICE_UNAVAILABLE"
	ErrCodeRateLimited    = "ERR_RATE_LIMITED"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeLocked              = "ERR_LOCKED"
	ErrCodeDuplicateRequest    = "ERR_DUPLICATE_REQUEST"
)

// Ledger rule error codes
const (
	ErrCodeAmountExceedsBalance = "ERR_AMOUNT_EXCEEDS_BALANCE"
	ErrCodeDuplicateCashEntry   = "ERR_DUPLICATE_CASH_ENTRY"
	ErrCodeAlreadyPaid          = "ERR_ALREADY_PAID"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInvalidJSON:    http.StatusBadRequest,
	ErrCodeRequestTooBig:  http.StatusRequestEntityTooLarge,
	ErrCodeMissingKey:     http.StatusBadRequest,
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
	ErrCodeTokenInvalid:   http.StatusUnauthorized,
	ErrCodeServiceUnavail: http.StatusServiceUnavailable,
	ErrCodeRateLimited:    http.StatusTooManyRequests,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeLocked:              http.StatusLocked,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	ErrCodeAmountExceedsBalance: http.StatusBadRequest,
	ErrCodeDuplicateCashEntry:   http.StatusBadRequest,
	ErrCodeAlreadyPaid:          http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeValidation:           ErrCodeValidation,
	shared.CodeNotFound:             ErrCodeNotFound,
	shared.CodeAlreadyExists:        ErrCodeAlreadyExists,
	shared.CodeConflict:             ErrCodeConflict,
	shared.CodeConcurrencyConflict:  ErrCodeConcurrencyConflict,
	shared.CodeAmountExceedsBalance: ErrCodeAmountExceedsBalance,
	shared.CodeDuplicateCashEntry:   ErrCodeDuplicateCashEntry,
	shared.CodeAlreadyPaid:          ErrCodeAlreadyPaid,
	shared.CodeLocked:               ErrCodeLocked,
	shared.CodeDuplicateRequest:     ErrCodeDuplicateRequest,
	shared.CodeUnauthorized:         ErrCodeUnauthorized,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes collapse to ERR_INTERNAL so no internal detail leaks.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	return ErrCodeInternal
}
