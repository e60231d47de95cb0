package invorto

import (
	"fmt"
	"strings"
)

// APIError describes a non-success HTTP status returned by the Invorto platform.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Temporary reports whether the error may succeed on retry.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	if e.Status == 429 {
		return true
	}
	return e.Status >= 500 && e.Status < 600
}

// ValidationError reports caller input or a server payload that does not match
// the entity schema. Fields lists the offending field paths.
type ValidationError struct {
	Entity string
	Fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: validation failed", e.Entity)
	}
	return fmt.Sprintf("%s: invalid or missing fields: %s", e.Entity, strings.Join(e.Fields, ", "))
}

// NetworkError wraps a failure below the HTTP semantic layer: connection
// errors, timeouts, or a response body that is not well-formed.
type NetworkError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Temporary reports whether the failure is worth retrying.
func (e *NetworkError) Temporary() bool {
	if e == nil || e.Err == nil {
		return false
	}
	type temporary interface{ Temporary() bool }
	if t, ok := e.Err.(temporary); ok {
		return t.Temporary()
	}
	type timeout interface{ Timeout() bool }
	if t, ok := e.Err.(timeout); ok {
		return t.Timeout()
	}
	return false
}
