package ports

import "github.com/netlock-dev/netlock/domain/entities"

// Gate is the decision surface hooks consult on every invocation. The
// enforcement state is read at call time, not install time, so a hook that
// outlives a Disable/Enable cycle always sees the current state.
type Gate interface {
	// Enforcing reports whether enforcement is currently active.
	Enforcing() bool

	// Check evaluates a connection attempt against the whitelist. It
	// returns nil when the attempt is allowed and a *errors.DeniedError
	// when it is blocked.
	Check(req entities.ConnectRequest) error

	// Deny reports an unconditional denial (used by categories that block
	// independent of the whitelist) and returns the *errors.DeniedError.
	Deny(req entities.ConnectRequest, reason string) error

	// Debugf emits a diagnostic line when debug logging is on.
	Debugf(format string, args ...any)
}
