package client

import (
	"fmt"
	"strings"
)

// RequestError is returned when an API call does not reach its success status
type RequestError struct {
	// Action names the failed operation in plain words, e.g. "create course".
	Action string
	// Status is the HTTP status, 0 when no response was received or the input was rejected locally.
	Status int
	// Message is the server or validation message, when there is one.
	Message string
	// Field is the first failing input field of a validation error.
	Field string
	Err   error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to %s", e.Action)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Notification returns the text shown to the user for the failure
func (e *RequestError) Notification() string {
	return fmt.Sprintf("Failed to %s. Please try again.", e.Action)
}
