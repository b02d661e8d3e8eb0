package hooks

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/netlock-dev/netlock/domain/entities"
	"github.com/netlock-dev/netlock/domain/ports"
)

// DialFunc matches net.Dialer.DialContext and is the shape of the
// module's dial entry points.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

var defaultDialer = &net.Dialer{}

// dialEntry is the indirection every module dial entry point goes through.
// The net package itself cannot be re-pointed, so the module provides the
// entry points and the dial hook swaps this handle.
var (
	dialMu    sync.RWMutex
	dialEntry DialFunc = defaultDialer.DialContext
)

// DialContext establishes a host+port connection through the interception
// layer. Equivalent to (&net.Dialer{}).DialContext while enforcement is
// off; while enforcing, the destination host is whitelist-checked before
// any I/O occurs.
func DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return currentDial()(ctx, network, address)
}

// Dial is DialContext with a background context.
func Dial(network, address string) (net.Conn, error) {
	return DialContext(context.Background(), network, address)
}

// DialTimeout is Dial with a deadline.
func DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return DialContext(ctx, network, address)
}

func currentDial() DialFunc {
	dialMu.RLock()
	defer dialMu.RUnlock()
	return dialEntry
}

type dialHook struct {
	orig      DialFunc
	installed bool
}

// NewDialHook returns the hook covering the module's dial entry points.
func NewDialHook() ports.Hook {
	return &dialHook{}
}

func (h *dialHook) Category() string { return CategoryDial }

func (h *dialHook) Install(gate ports.Gate) error {
	if h.installed {
		return nil
	}
	dialMu.Lock()
	defer dialMu.Unlock()

	orig := dialEntry
	h.orig = orig
	dialEntry = func(ctx context.Context, network, address string) (net.Conn, error) {
		if !gate.Enforcing() {
			return orig(ctx, network, address)
		}
		host, port := splitAddr(address)
		req := entities.ConnectRequest{Host: host, Port: port, Category: CategoryDial}
		if err := gate.Check(req); err != nil {
			return nil, err
		}
		return orig(ctx, network, address)
	}
	h.installed = true
	return nil
}

func (h *dialHook) Uninstall() {
	if !h.installed {
		return
	}
	dialMu.Lock()
	defer dialMu.Unlock()
	dialEntry = h.orig
	h.orig = nil
	h.installed = false
}
