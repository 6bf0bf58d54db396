package dto

import (
	"net/http"

	"github.com/tinymillion/backend/internal/domain/shared"
)

// Error codes raised by the HTTP layer itself. Domain codes come from
// the shared package and are passed through unchanged.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeCORS            = "CORS_REJECTED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeAlreadyExists:        http.StatusConflict,
	shared.CodeDuplicate:            http.StatusBadRequest,
	shared.CodeInvalidInput:         http.StatusBadRequest,
	shared.CodeValidationFailed:     http.StatusUnprocessableEntity,
	shared.CodeUnauthorized:         http.StatusUnauthorized,
	shared.CodeInvalidCredentials:   http.StatusUnauthorized,
	shared.CodeForbidden:            http.StatusForbidden,
	shared.CodeStoreInactive:        http.StatusForbidden,
	shared.CodeInvalidState:         http.StatusBadRequest,
	shared.CodePaymentNotConfigured: http.StatusServiceUnavailable,
	shared.CodePaymentIncomplete:    http.StatusBadRequest,
	shared.CodeInvalidSignature:     http.StatusBadRequest,
	shared.CodeMisconfigured:        http.StatusInternalServerError,

	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeCORS:            http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
