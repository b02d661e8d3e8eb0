// Package session provides the optional hook guarding caller-managed HTTP
// clients (anything built on *http.Client rather than the package-level
// defaults). It is a pluggable hook provider: linking the package is what
// makes the category available,
//
//	import _ "github.com/netlock-dev/netlock/session"
//
// and its absence from a binary is not an error; enforcement simply
// proceeds without the session category.
package session

import (
	"errors"
	"net/http"
	"sync"

	"github.com/netlock-dev/netlock/domain/ports"
	"github.com/netlock-dev/netlock/hooks"
)

var (
	mu         sync.Mutex
	registered = make(map[*http.Client]struct{})
	originals  = make(map[*http.Client]http.RoundTripper)
	activeGate ports.Gate
)

func init() {
	hooks.RegisterProvider(func() ports.Hook { return &sessionHook{} })
}

// Register puts c under egress enforcement. If enforcement is already
// active the client's transport is wrapped immediately; otherwise it is
// wrapped on the next enforcement activation. Registering a client twice
// is a no-op.
func Register(c *http.Client) {
	if c == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registered[c]; ok {
		return
	}
	registered[c] = struct{}{}
	if activeGate != nil {
		wrapLocked(c)
	}
}

// Deregister removes c from enforcement, restoring its original transport
// if it is currently wrapped.
func Deregister(c *http.Client) {
	if c == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if orig, ok := originals[c]; ok {
		c.Transport = orig
		delete(originals, c)
	}
	delete(registered, c)
}

type sessionHook struct {
	installed bool
}

func (h *sessionHook) Category() string { return hooks.CategorySession }

func (h *sessionHook) Install(gate ports.Gate) error {
	mu.Lock()
	defer mu.Unlock()
	if activeGate != nil {
		// A second guard cannot own the same registered clients.
		return errors.New("session hook already installed")
	}
	activeGate = gate
	for c := range registered {
		wrapLocked(c)
	}
	h.installed = true
	return nil
}

func (h *sessionHook) Uninstall() {
	mu.Lock()
	defer mu.Unlock()
	if !h.installed {
		return
	}
	for c, orig := range originals {
		c.Transport = orig
		delete(originals, c)
	}
	activeGate = nil
	h.installed = false
}

// wrapLocked captures c's transport and swaps in the guarded one.
// Caller holds mu and activeGate is non-nil.
func wrapLocked(c *http.Client) {
	originals[c] = c.Transport
	c.Transport = hooks.NewGuardedTransport(activeGate, c.Transport, hooks.CategorySession)
}
