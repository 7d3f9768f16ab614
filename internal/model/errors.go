package model

import "errors"

// Common errors used across the application
var (
	// Storage lookup errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrPhoneNotFound       = errors.New("phone not found")
	ErrGroupNotFound       = errors.New("group not found")
	ErrGatewayNotFound     = errors.New("gateway not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// Error codes carried by FieldError. These are the wire-level `error` values
// of the structured error body.
const (
	CodeRequired      = "required"
	CodeUnknown       = "unknown"
	CodeUniq          = "uniq"
	CodeMinLength     = "minlength"
	CodePattern       = "pattern"
	CodeConfirmation  = "confirmation"
	CodeWrongValue    = "wrong_value"
	CodeForbidden     = "forbidden"
	CodeWrongPassword = "wrong_password"
	CodeBadRequest    = "bad_request"
)

// FieldError is a validation or lookup failure pinned to a single request
// field. The first FieldError encountered short-circuits the request.
type FieldError struct {
	Field string
	Code  string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return e.Field + "." + e.Code
}

// NewFieldError creates a FieldError for the given field and code
func NewFieldError(field, code string) *FieldError {
	return &FieldError{Field: field, Code: code}
}
