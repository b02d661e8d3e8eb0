package hooks

import (
	"context"
	"net"
	"sync"

	"github.com/netlock-dev/netlock/domain/entities"
	"github.com/netlock-dev/netlock/domain/ports"
)

// rawEntry is the handle behind RawDial, swapped by the raw-conn hook.
var (
	rawMu    sync.RWMutex
	rawEntry DialFunc = defaultDialer.DialContext
)

// RawDial constructs a connection without host-based checks, the analogue
// of constructing a socket directly. While enforcing, construction is
// denied outright, independent of the whitelist: a raw conn escapes host
// checks at creation time, so the only safe decision is denial.
func RawDial(network, address string) (net.Conn, error) {
	return RawDialContext(context.Background(), network, address)
}

// RawDialContext is RawDial with a caller-supplied context.
func RawDialContext(ctx context.Context, network, address string) (net.Conn, error) {
	rawMu.RLock()
	fn := rawEntry
	rawMu.RUnlock()
	return fn(ctx, network, address)
}

type rawConnHook struct {
	orig      DialFunc
	installed bool
}

// NewRawConnHook returns the hook covering raw connection construction.
func NewRawConnHook() ports.Hook {
	return &rawConnHook{}
}

func (h *rawConnHook) Category() string { return CategoryRawConn }

func (h *rawConnHook) Install(gate ports.Gate) error {
	if h.installed {
		return nil
	}
	rawMu.Lock()
	defer rawMu.Unlock()

	orig := rawEntry
	h.orig = orig
	rawEntry = func(ctx context.Context, network, address string) (net.Conn, error) {
		if !gate.Enforcing() {
			return orig(ctx, network, address)
		}
		host, port := splitAddr(address)
		req := entities.ConnectRequest{Host: host, Port: port, Category: CategoryRawConn}
		return nil, gate.Deny(req, "raw connection construction blocked")
	}
	h.installed = true
	return nil
}

func (h *rawConnHook) Uninstall() {
	if !h.installed {
		return
	}
	rawMu.Lock()
	defer rawMu.Unlock()
	rawEntry = h.orig
	h.orig = nil
	h.installed = false
}
