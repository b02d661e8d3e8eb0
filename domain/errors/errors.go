// Package errors provides the error types raised at the enforcement
// boundary. All types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrDenied is the sentinel all denials match. Callers that do not care
// which hook category blocked the attempt can test with
// errors.Is(err, ErrDenied).
var ErrDenied = stdErrors.New("netlock: connection denied")

// DeniedError is returned when an outbound connection attempt is blocked
// by the egress policy. It is raised synchronously at the point of the
// attempt; no I/O has occurred.
type DeniedError struct {
	// Host is the destination that was denied.
	Host string

	// Port is the destination port, 0 when the entry point carries none.
	Port int

	// Category identifies the hook that blocked the attempt
	// (e.g. "dial", "url-fetch").
	Category string
}

func (e *DeniedError) Error() string {
	if e.Port > 0 {
		return fmt.Sprintf("netlock: %s to %s:%d denied by egress policy", e.Category, e.Host, e.Port)
	}
	if e.Host == "" {
		return fmt.Sprintf("netlock: %s denied by egress policy", e.Category)
	}
	return fmt.Sprintf("netlock: %s to %s denied by egress policy", e.Category, e.Host)
}

// Is reports a match for the ErrDenied sentinel.
func (e *DeniedError) Is(target error) bool {
	return target == ErrDenied
}

// InstallError records a hook category that could not be installed during
// enforcement activation. Installation failures are non-fatal: the category
// is skipped and enforcement proceeds for the rest.
type InstallError struct {
	Err      error
	Category string
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("netlock: installing %s hook failed: %v", e.Category, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
