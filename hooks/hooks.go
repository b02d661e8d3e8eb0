// Package hooks implements the interception layer: one hook per
// networking entry-point category, each capturing the original handle at
// install time and delegating to it on the allowed path. The set of
// categories a guard installs and the set it restores are the same by
// construction; the guard only restores what this package reported as
// installed.
package hooks

import (
	"net"
	"strconv"
	"sync"

	"github.com/netlock-dev/netlock/domain/ports"
)

// Entry-point categories covered by the built-in hooks.
const (
	// CategoryRawConn is raw connection construction, denied outright
	// while enforcing since a raw conn bypasses host checks at creation.
	CategoryRawConn = "raw-conn"

	// CategoryDial is host+port connection establishment.
	CategoryDial = "dial"

	// CategoryURLFetch is the high-level URL fetch path
	// (http.Get and friends through http.DefaultClient).
	CategoryURLFetch = "url-fetch"

	// CategoryHTTPTransport is the HTTP client connect path
	// (http.DefaultTransport).
	CategoryHTTPTransport = "http-transport"

	// CategorySession is the optional caller-registered HTTP client path,
	// present only when its provider package is linked in.
	CategorySession = "session"
)

// Provider supplies an optional hook. Optional hook packages register a
// Provider from their init function; importing the package is what makes
// the category available, mirroring how optional integrations are linked
// into a Go binary.
type Provider func() ports.Hook

var (
	providersMu sync.Mutex
	providers   []Provider
)

// RegisterProvider adds an optional hook provider. Absence of any provider
// is not an error; Default simply returns the built-in hooks.
func RegisterProvider(p Provider) {
	if p == nil {
		return
	}
	providersMu.Lock()
	defer providersMu.Unlock()
	providers = append(providers, p)
}

// Default returns one fresh hook per available entry-point category: the
// four built-ins plus any registered optional providers. Queried at every
// Enable so providers registered late are picked up.
func Default() []ports.Hook {
	set := []ports.Hook{
		NewRawConnHook(),
		NewDialHook(),
		NewURLFetchHook(),
		NewTransportHook(),
	}
	providersMu.Lock()
	defer providersMu.Unlock()
	for _, p := range providers {
		if h := p(); h != nil {
			set = append(set, h)
		}
	}
	return set
}

// splitAddr extracts host and numeric port from a dial address. The host
// is returned as-is when the address carries no port.
func splitAddr(address string) (host string, port int) {
	h, p, err := net.SplitHostPort(address)
	if err != nil {
		return address, 0
	}
	port, _ = strconv.Atoi(p)
	return h, port
}
