package shared

import "errors"

// Error codes understood by the HTTP layer
const (
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeDuplicate            = "DUPLICATE"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeForbidden            = "FORBIDDEN"
	CodeStoreInactive        = "STORE_INACTIVE"
	CodeInvalidState         = "INVALID_STATE"
	CodePaymentNotConfigured = "PAYMENT_NOT_CONFIGURED"
	CodePaymentIncomplete    = "PAYMENT_INCOMPLETE"
	CodeInvalidSignature     = "INVALID_SIGNATURE"
	CodeMisconfigured        = "MISCONFIGURED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code, so sentinels match
// errors created with a custom message.
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

// WrapDomainError creates a domain error that keeps the underlying cause
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound is shorthand for a NOT_FOUND error with a custom message
func NotFound(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// InvalidInput is shorthand for an INVALID_INPUT error with a custom message
func InvalidInput(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}

// Forbidden is shorthand for a FORBIDDEN error with a custom message
func Forbidden(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// Unauthorized is shorthand for an UNAUTHORIZED error with a custom message
func Unauthorized(message string) *DomainError {
	return NewDomainError(CodeUnauthorized, message)
}

// AsDomainError extracts a *DomainError from err
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)
