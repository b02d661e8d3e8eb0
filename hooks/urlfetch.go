package hooks

import (
	"net/http"

	"github.com/netlock-dev/netlock/domain/ports"
)

type urlFetchHook struct {
	orig      *http.Client
	installed bool
}

// NewURLFetchHook returns the hook covering the high-level URL fetch path.
// It swaps the http.DefaultClient global (behind http.Get, http.Post and
// http.Head) for a copy whose transport checks the parsed URL hostname,
// preserving the original client's jar, redirect policy and timeout so
// allowed calls stay fully transparent.
func NewURLFetchHook() ports.Hook {
	return &urlFetchHook{}
}

func (h *urlFetchHook) Category() string { return CategoryURLFetch }

func (h *urlFetchHook) Install(gate ports.Gate) error {
	if h.installed {
		return nil
	}
	h.orig = http.DefaultClient
	http.DefaultClient = &http.Client{
		Transport:     NewGuardedTransport(gate, h.orig.Transport, CategoryURLFetch),
		CheckRedirect: h.orig.CheckRedirect,
		Jar:           h.orig.Jar,
		Timeout:       h.orig.Timeout,
	}
	h.installed = true
	return nil
}

func (h *urlFetchHook) Uninstall() {
	if !h.installed {
		return
	}
	http.DefaultClient = h.orig
	h.orig = nil
	h.installed = false
}
