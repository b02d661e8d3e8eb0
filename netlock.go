// Package netlock blocks outbound network access at the Go library level
// to reduce the risk of accidental data exfiltration from semi-trusted
// code running in the same process. Connection attempts made through the
// module's dial entry points, through http.DefaultTransport, through
// http.DefaultClient (http.Get and friends) or through registered HTTP
// clients are denied unless the destination host matches the whitelist;
// the fixed loopback set {localhost, 127.0.0.1, ::1} is always allowed.
//
// Usage:
//
//	netlock.AddAllowedHost("api.example.com")
//	netlock.EnableEnforcement()
//	defer netlock.DisableEnforcement()
//
//	_, err := http.Get("https://elsewhere.example") // denied
//	if errors.Is(err, netlock.ErrDenied) { ... }
//
// Or activate automatically at process start:
//
//	import _ "github.com/netlock-dev/netlock/autoload"
//
// Limitations: the guarantee is best-effort at the Go runtime boundary
// only. Subprocesses, cgo code and direct syscalls bypass the intercepted
// entry points; use OS-level firewalls, network namespaces or a container
// without network access for a stronger guarantee.
package netlock

import (
	"context"
	"net"
	"time"

	"github.com/netlock-dev/netlock/config"
	"github.com/netlock-dev/netlock/domain/entities"
	neterrors "github.com/netlock-dev/netlock/domain/errors"
	"github.com/netlock-dev/netlock/guard"
	"github.com/netlock-dev/netlock/hooks"
)

// ErrDenied is the sentinel all denials match; see errors.Is.
var ErrDenied = neterrors.ErrDenied

// DeniedError carries the denied host, port and hook category.
type DeniedError = neterrors.DeniedError

// defaultGuard is the process-wide state behind the package-level API.
// It queries the hooks package at every activation so optional providers
// linked into the binary are picked up.
var defaultGuard = guard.New(guard.WithHookSource(hooks.Default))

// DefaultGuard returns the process-wide guard. Tests needing isolation
// should construct their own with guard.New instead.
func DefaultGuard() *guard.Guard { return defaultGuard }

// EnableEnforcement installs the interception hooks and enters the
// enforcing state. Idempotent; hook categories that fail to install are
// skipped and enforcement proceeds for the rest.
func EnableEnforcement() { defaultGuard.Enable() }

// DisableEnforcement restores the captured originals and exits the
// enforcing state. Idempotent; never fails.
func DisableEnforcement() { defaultGuard.Disable() }

// IsEnforcing reports whether enforcement is active.
func IsEnforcing() bool { return defaultGuard.IsEnabled() }

// ScopedAllow runs fn with enforcement suspended and restores the prior
// state on every exit path. The suspension is process-wide: traffic from
// other goroutines is unenforced for the duration of fn.
func ScopedAllow(fn func() error) error { return defaultGuard.ScopedAllow(fn) }

// AddAllowedHost adds a host, domain suffix, glob pattern or CIDR range
// to the whitelist, effective on the next connection attempt.
func AddAllowedHost(hostOrDomain string) { defaultGuard.AddAllowedHost(hostOrDomain) }

// RemoveAllowedHost removes a whitelist entry, effective immediately.
func RemoveAllowedHost(hostOrDomain string) { defaultGuard.RemoveAllowedHost(hostOrDomain) }

// AllowedHosts returns the current whitelist, sorted.
func AllowedHosts() []string { return defaultGuard.AllowedHosts() }

// SetDebugLogging toggles diagnostic output, independent of the
// enforcement state.
func SetDebugLogging(enabled bool) { defaultGuard.SetDebug(enabled) }

// Dial establishes a host+port connection through the interception layer.
func Dial(network, address string) (net.Conn, error) {
	return hooks.Dial(network, address)
}

// DialContext is Dial with a caller-supplied context.
func DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	return hooks.DialContext(ctx, network, address)
}

// DialTimeout is Dial with a deadline.
func DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return hooks.DialTimeout(network, address, timeout)
}

// RawDial constructs a connection without host-based checks. While
// enforcing it is denied outright, independent of the whitelist.
func RawDial(network, address string) (net.Conn, error) {
	return hooks.RawDial(network, address)
}

// ApplyPolicy seeds the whitelist and debug flag from a parsed policy.
func ApplyPolicy(p entities.PolicyFile) {
	for _, entry := range p.Allow {
		AddAllowedHost(entry)
	}
	if p.Debug {
		SetDebugLogging(true)
	}
}

// LoadPolicy loads a YAML policy file and applies it to the process-wide
// whitelist. It does not change the enforcement state.
func LoadPolicy(path string) error {
	p, err := config.LoadPolicyFile(path)
	if err != nil {
		return err
	}
	ApplyPolicy(p)
	return nil
}
