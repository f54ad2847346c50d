package errors

import "github.com/pkg/errors"

// ErrorTracer is a custom error type that includes a message and an underlying error.
type ErrorTracer struct {
	Message string
	Err     error
}

// TracerFromError creates a new ErrorTracer from an existing error, preserving the stack trace.
func TracerFromError(err error) *ErrorTracer {
	tracer := &ErrorTracer{Message: err.Error(), Err: err}
	if _, ok := err.(StackTracer); !ok {
		tracer.Err = errors.WithStack(err)
	}
	return tracer
}

// Wrap annotates err with message and records a stack trace.
func Wrap(err error, message string) *ErrorTracer {
	return TracerFromError(errors.WithMessage(err, message))
}

// StackTracer is an interface that requires a StackTrace method.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

// Unwrap returns the traced error.
func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the stack recorded when the error was traced.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if st, ok := e.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
