package errors

import "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	Message string

	// Code (required) is one of the ErrorCode values.
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object any
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message string, code ErrorCode, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code.String(),
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message string, code ErrorCode, field string, object any) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code.String(),
		Field:   field,
		Object:  object,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether err, or any error it wraps, carries code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	var errDetails *ErrorDetails
	if !errors.As(err, &errDetails) {
		return false
	}

	return errDetails.Code == code.String()
}
