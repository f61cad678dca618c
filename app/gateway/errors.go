package gateway

import (
	"errors"
	"fmt"
)

// NetworkError covers every way a gateway call can fail before a usable
// response body is available: transport errors, timeouts, non-2xx statuses,
// unparseable bodies and an open circuit breaker.
type NetworkError struct {
	Op         Op
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway %s: HTTP error: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("gateway %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RejectionError is returned when the gateway answered with a parseable body
// whose status is not "success".
type RejectionError struct {
	Op      Op
	Status  string
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway %s rejected: %s (%s)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("gateway %s rejected with status %q", e.Op, e.Status)
}

func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

func IsRejection(err error) bool {
	var rejErr *RejectionError
	return errors.As(err, &rejErr)
}

// RejectionMessage returns the gateway's own message for a rejection, if any.
func RejectionMessage(err error) string {
	var rejErr *RejectionError
	if errors.As(err, &rejErr) {
		return rejErr.Message
	}
	return ""
}
