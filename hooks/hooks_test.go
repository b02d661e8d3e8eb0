package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netlock-dev/netlock/domain/ports"
)

func TestSplitAddr(t *testing.T) {
	tests := []struct {
		name    string
		address string
		host    string
		port    int
	}{
		{"host and port", "example.com:443", "example.com", 443},
		{"ip and port", "127.0.0.1:8080", "127.0.0.1", 8080},
		{"bracketed ipv6", "[::1]:443", "::1", 443},
		{"no port", "example.com", "example.com", 0},
		{"bare ipv6", "::1", "::1", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			host, port := splitAddr(tc.address)
			assert.Equal(t, tc.host, host)
			assert.Equal(t, tc.port, port)
		})
	}
}

func TestDefault_IncludesBuiltinCategories(t *testing.T) {
	cats := map[string]bool{}
	for _, h := range Default() {
		cats[h.Category()] = true
	}
	for _, want := range []string{CategoryRawConn, CategoryDial, CategoryURLFetch, CategoryHTTPTransport} {
		assert.True(t, cats[want], "missing built-in category %s", want)
	}
}

type providerHook struct{ stubGate ports.Gate }

func (h *providerHook) Category() string           { return "custom-provider" }
func (h *providerHook) Install(g ports.Gate) error { h.stubGate = g; return nil }
func (h *providerHook) Uninstall()                 {}

func TestRegisterProvider_AppearsInDefault(t *testing.T) {
	RegisterProvider(func() ports.Hook { return &providerHook{} })
	RegisterProvider(nil) // ignored

	found := false
	for _, h := range Default() {
		if h.Category() == "custom-provider" {
			found = true
		}
	}
	assert.True(t, found)
}
