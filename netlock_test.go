package netlock_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netlock-dev/netlock"
)

func newLoopbackServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func enforce(t *testing.T) {
	t.Helper()
	netlock.EnableEnforcement()
	t.Cleanup(netlock.DisableEnforcement)
}

func TestEnableDisable_Idempotent(t *testing.T) {
	origTransport := http.DefaultTransport
	origClient := http.DefaultClient

	netlock.EnableEnforcement()
	netlock.EnableEnforcement()
	assert.True(t, netlock.IsEnforcing())

	netlock.DisableEnforcement()
	netlock.DisableEnforcement()
	assert.False(t, netlock.IsEnforcing())

	assert.Same(t, origTransport, http.DefaultTransport)
	assert.Same(t, origClient, http.DefaultClient)
}

func TestEmptyWhitelist_DeniesRemoteAllowsLoopback(t *testing.T) {
	srv := newLoopbackServer(t)
	enforce(t)

	_, err := netlock.Dial("tcp", "example.com:443")
	require.Error(t, err)
	assert.True(t, errors.Is(err, netlock.ErrDenied))

	var denied *netlock.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "example.com", denied.Host)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err, "loopback always allowed")
	resp.Body.Close()
}

func TestWhitelistAddRemove(t *testing.T) {
	enforce(t)

	_, err := netlock.Dial("tcp", "api.example.com:443")
	assert.True(t, errors.Is(err, netlock.ErrDenied))

	netlock.AddAllowedHost("example.com")
	t.Cleanup(func() { netlock.RemoveAllowedHost("example.com") })
	assert.Contains(t, netlock.AllowedHosts(), "example.com")

	// Allowed now: the attempt proceeds to real dialing and fails on
	// DNS for this name, which must not be a denial.
	_, err = netlock.Dial("tcp", "api.example.com:443")
	if err != nil {
		assert.False(t, errors.Is(err, netlock.ErrDenied))
	}

	netlock.RemoveAllowedHost("example.com")
	_, err = netlock.Dial("tcp", "api.example.com:443")
	assert.True(t, errors.Is(err, netlock.ErrDenied))
}

func TestScopedAllow_RestoresEnforcement(t *testing.T) {
	srv := newLoopbackServer(t)
	enforce(t)

	err := netlock.ScopedAllow(func() error {
		assert.False(t, netlock.IsEnforcing())
		_, err := netlock.RawDial("tcp", srv.Listener.Addr().String())
		return err
	})
	require.NoError(t, err)
	assert.True(t, netlock.IsEnforcing())

	_, err = netlock.RawDial("tcp", srv.Listener.Addr().String())
	assert.True(t, errors.Is(err, netlock.ErrDenied))
}

func TestScopedAllow_WhileDisabled(t *testing.T) {
	require.False(t, netlock.IsEnforcing())
	err := netlock.ScopedAllow(func() error { return nil })
	require.NoError(t, err)
	assert.False(t, netlock.IsEnforcing(), "no unintended activation on exit")
}

func TestLoadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allow:\n  - policy.example.net\n"), 0o600))

	require.NoError(t, netlock.LoadPolicy(path))
	t.Cleanup(func() { netlock.RemoveAllowedHost("policy.example.net") })
	assert.Contains(t, netlock.AllowedHosts(), "policy.example.net")

	enforce(t)
	_, err := netlock.Dial("tcp", "sub.policy.example.net:443")
	if err != nil {
		assert.False(t, errors.Is(err, netlock.ErrDenied), "subdomain of policy entry is allowed")
	}
}

func TestURLFetchDenied(t *testing.T) {
	enforce(t)

	_, err := http.Get("http://denied.test/export")
	require.Error(t, err)
	assert.True(t, errors.Is(err, netlock.ErrDenied))
}
