package pokedex

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECACHE        = "cache"        // local storage failure, never user-visible
	ECONFLICT     = "conflict"     // record already exists
	EDECODE       = "decode"       // remote payload shape mismatch
	EINTERNAL     = "internal"     // anything unexpected
	EINVALID      = "invalid"      // validation failed
	ENOTFOUND     = "not_found"    // entity does not exist
	EUNAUTHORIZED = "unauthorized" // bad credentials
	EUNAVAILABLE  = "unavailable"  // network/transport failure
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pokedex error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code, or EINTERNAL for non-application
// errors. Returns an empty string for a nil error.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, or a generic message for
// non-application errors. Returns an empty string for a nil error.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
