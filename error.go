package rocthinc

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be portable across the transport boundary: the HTTP
// layer maps codes to status codes, the CLI prints the message directly.
const (
	EINVALID       = "invalid"        // malformed or unsupported input
	EINTERNAL      = "internal"       // internal error
	ENOTFOUND      = "not_found"      // resource does not exist
	EUNREACHABLE   = "unreachable"    // network, DNS, or connection failure
	EBADSTATUS     = "bad_status"     // non-success HTTP response
	ERENDERTIMEOUT = "render_timeout" // browser navigation or wait exceeded its bound
	EINTERSTITIAL  = "interstitial"   // login/app-install/marketing wall, not real content
	ENOMESSAGES    = "no_messages"    // every extraction strategy came up empty
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to show to the caller.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rocthinc error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper for constructing an *Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
