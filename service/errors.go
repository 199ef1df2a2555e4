package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the requested record or feature is absent.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
)

// ResponderError is an error carrying a machine-readable code that the HTTP
// error handler maps to a status.
type ResponderError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	// Inner is never shown to API consumers.
	Inner error `json:"-"`
}

// NewResponderError creates a new ResponderError.
func NewResponderError(code string, message string, inner error) *ResponderError {
	return &ResponderError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// newOrKeep returns inner when it already is a ResponderError so that the
// innermost code wins, otherwise a fresh error with the given code.
func newOrKeep(code string, message string, inner error) *ResponderError {
	if re := ToResponderError(inner); re != nil {
		return re
	}
	return NewResponderError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *ResponderError {
	return newOrKeep(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *ResponderError {
	return newOrKeep(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *ResponderError {
	return newOrKeep(ErrBadParameter, message, inner)
}

func (e ResponderError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e ResponderError) Unwrap() error {
	return e.Inner
}

// ToResponderError returns the first ResponderError in err's chain, or nil.
func ToResponderError(err error) *ResponderError {
	var e *ResponderError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ErrorCode returns the code of the error, if available.
func ErrorCode(err error) string {
	if re := ToResponderError(err); re != nil {
		return re.Code
	}
	return ""
}

func IsInternalServerError(err error) bool {
	return ErrorCode(err) == ErrInternalServerError
}

func IsEntityNotFoundError(err error) bool {
	return ErrorCode(err) == ErrEntityNotFound
}

func IsBadParameterError(err error) bool {
	return ErrorCode(err) == ErrBadParameter
}
