package hooks

import (
	"net/http"
	"strconv"

	"github.com/netlock-dev/netlock/domain/entities"
	"github.com/netlock-dev/netlock/domain/ports"
)

// guardTransport wraps an http.RoundTripper with the egress decision.
// Allowed requests are delegated unchanged; denied requests return a
// *errors.DeniedError before any connection is attempted.
type guardTransport struct {
	gate     ports.Gate
	base     http.RoundTripper
	category string
}

// NewGuardedTransport wraps base with the egress decision under the given
// gate. A nil base falls back to http.DefaultTransport at call time,
// matching http.Client semantics. The built-in HTTP hooks use this
// internally; it is exported so callers can guard transports of their own
// clients without registering them.
func NewGuardedTransport(gate ports.Gate, base http.RoundTripper, category string) http.RoundTripper {
	return &guardTransport{gate: gate, base: base, category: category}
}

func (t *guardTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.gate.Enforcing() {
		return t.tripper().RoundTrip(req)
	}
	host := req.URL.Hostname()
	port, _ := strconv.Atoi(req.URL.Port())
	cr := entities.ConnectRequest{Host: host, Port: port, Category: t.category}
	if err := t.gate.Check(cr); err != nil {
		return nil, err
	}
	return t.tripper().RoundTrip(req)
}

func (t *guardTransport) tripper() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

type transportHook struct {
	orig      http.RoundTripper
	installed bool
}

// NewTransportHook returns the hook covering the HTTP client connect path:
// it swaps the http.DefaultTransport global for a guarded transport and
// restores the captured original on uninstall.
func NewTransportHook() ports.Hook {
	return &transportHook{}
}

func (h *transportHook) Category() string { return CategoryHTTPTransport }

func (h *transportHook) Install(gate ports.Gate) error {
	if h.installed {
		return nil
	}
	h.orig = http.DefaultTransport
	http.DefaultTransport = NewGuardedTransport(gate, h.orig, CategoryHTTPTransport)
	h.installed = true
	return nil
}

func (h *transportHook) Uninstall() {
	if !h.installed {
		return
	}
	http.DefaultTransport = h.orig
	h.orig = nil
	h.installed = false
}
