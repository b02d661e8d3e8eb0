package hooks

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neterrors "github.com/netlock-dev/netlock/domain/errors"
	"github.com/netlock-dev/netlock/guard"
)

func newLoopbackServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTransportHook_RestoresOriginalTransport(t *testing.T) {
	orig := http.DefaultTransport

	g := guard.New(guard.WithHooks(NewTransportHook()))
	g.Enable()
	assert.NotSame(t, orig, http.DefaultTransport, "install must swap the default transport")

	g.Disable()
	assert.Same(t, orig, http.DefaultTransport, "disable must restore the captured original")
}

func TestTransportHook_AllowsLoopbackRequest(t *testing.T) {
	srv := newLoopbackServer(t)

	g := guard.New(guard.WithHooks(NewTransportHook()))
	g.Enable()
	defer g.Disable()

	client := &http.Client{} // nil Transport: uses the guarded default
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestTransportHook_DeniesUnlistedHost(t *testing.T) {
	g := guard.New(guard.WithHooks(NewTransportHook()))
	g.Enable()
	defer g.Disable()

	client := &http.Client{}
	resp, err := client.Get("http://denied.test/data")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, neterrors.ErrDenied))

	var denied *neterrors.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "denied.test", denied.Host)
	assert.Equal(t, CategoryHTTPTransport, denied.Category)
}

func TestNewGuardedTransport_WrapsArbitraryClient(t *testing.T) {
	srv := newLoopbackServer(t)

	g := guard.New()
	g.Enable()
	defer g.Disable()

	client := &http.Client{Transport: NewGuardedTransport(g, srv.Client().Transport, "custom")}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	_, err = client.Get("http://denied.test/")
	assert.True(t, errors.Is(err, neterrors.ErrDenied))

	var denied *neterrors.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "custom", denied.Category)
}
