package shared

import (
	"errors"
	"strings"
)

// Messages surfaced to users for failures that are not the backend's.
const (
	MsgInvalidRequest = "Invalid request data"
	MsgInternal       = "Internal server error"
	MsgUnauthorized   = "Unauthorized"
	MsgForbidden      = "Forbidden: Admin access required"
	MsgCSRFInvalid    = "Invalid CSRF token"
)

var (
	// ErrUnauthorized indicates an action that needs a session with tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by actions whose input failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return MsgInvalidRequest
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return MsgInvalidRequest + " (" + strings.Join(parts, "; ") + ")"
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
