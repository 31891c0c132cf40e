package errors

// ErrorDetails represents detailed information about an error surfaced at a
// host boundary (Redis, QuestDB, row decoding): a human message, a
// machine-discriminable ErrorCode, and the operation it occurred in.
type ErrorDetails struct {
	// Message is the human-readable error message.
	Message string
	// Code is the ErrorCode this error should be classified under.
	Code string
	// Op is the operation the error occurred in, e.g. "connect", "get", "copy".
	Op string
}

// NewErrorDetails creates a new ErrorDetails.
func NewErrorDetails(message string, code ErrorCode, op string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    string(code),
		Op:      op,
	}
}

// Error implements the error interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// ErrorCodeEquals checks whether a given error carries a specific code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	errDetails, ok := err.(*ErrorDetails)
	if !ok {
		return false
	}
	return errDetails.Code == string(code)
}
