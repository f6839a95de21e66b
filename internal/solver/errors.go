package solver

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when a failure response carries no error message
const GenericFailureMessage = "processing failed, please retry"

// ServerError is a non-success response from the solve endpoint
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

// TransportError is a request that did not complete, or a response body that could not be parsed
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage is the text to show the user for a failed submission
func UserMessage(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message == "" {
			return GenericFailureMessage
		}
		return serverErr.Message
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
