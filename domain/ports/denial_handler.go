package ports

import "github.com/netlock-dev/netlock/domain/entities"

// DenialHandler is called when the egress policy denies a connection
// attempt. Implementations can log, collect metrics, or take other actions.
// The handler runs synchronously in the caller's goroutine; it must not
// attempt network access of its own.
type DenialHandler interface {
	// OnDenial is called with the denied attempt and a human-readable reason.
	OnDenial(req entities.ConnectRequest, reason string)
}
