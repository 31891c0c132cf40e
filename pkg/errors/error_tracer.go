package errors

import "github.com/pkg/errors"

// ErrorTracer is an error wrapper that carries a stack trace, captured once
// at the point an underlying error is first wrapped.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates a new ErrorTracer with the provided message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{Message: message}
}

// TracerFromError creates an ErrorTracer from an existing error, attaching a
// stack trace unless err already carries one.
func TracerFromError(err error) *ErrorTracer {
	tracer := NewTracer(err.Error())
	tracer.Err = err
	if _, ok := err.(StackTracer); !ok {
		tracer.Err = errors.WithStack(err)
	}
	return tracer
}

// StackTracer is implemented by errors that can report a stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// Error implements the error interface.
func (e *ErrorTracer) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap attaches err to the tracer, adding a stack trace unless err already
// carries one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace returns the stack trace of the underlying error, if any.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if errWithStack, ok := e.Unwrap().(StackTracer); ok {
		return errWithStack.StackTrace()
	}
	return nil
}
