package paperpress

import (
	"errors"
	"fmt"
)

// Application error codes. These map closely to the failure categories a
// conversion request can hit: bad input, unreachable network, extraction
// exhaustion, content quality rejection, and compiler failure.
const (
	EINVALID     = "invalid"     // validation failed (bad URL, bad options)
	ENOTFOUND    = "not_found"   // resource does not exist
	EUNAVAILABLE = "unavailable" // network failure; retryable by caller policy
	EEXTRACT     = "extract"     // no strategy produced a qualifying article
	EQUALITY     = "quality"     // extraction succeeded but failed the quality gate
	ERENDER      = "render"      // external document compiler failed
	EINTERNAL    = "internal"    // unexpected internal error
)

// Error represents an application-specific error. Errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description, suitable for display.
	Message string

	// Hint optionally suggests a remediation to the user.
	Hint string
}

// Error implements the error interface. Not used by the application,
// provided for logging and debugging.
func (e *Error) Error() string {
	return fmt.Sprintf("paperpress error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorHint unwraps an application error and returns its remediation hint,
// or an empty string if none was attached.
func ErrorHint(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Hint
	}
	return ""
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorfHint is like Errorf but attaches a remediation hint shown to the
// user alongside the message.
func ErrorfHint(code, hint, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Hint:    hint,
	}
}
