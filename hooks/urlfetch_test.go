package hooks

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	neterrors "github.com/netlock-dev/netlock/domain/errors"
	"github.com/netlock-dev/netlock/guard"
)

func TestURLFetchHook_RestoresOriginalClient(t *testing.T) {
	orig := http.DefaultClient

	g := guard.New(guard.WithHooks(NewURLFetchHook()))
	g.Enable()
	assert.NotSame(t, orig, http.DefaultClient)

	g.Disable()
	assert.Same(t, orig, http.DefaultClient)
}

func TestURLFetchHook_AllowsLoopbackFetch(t *testing.T) {
	srv := newLoopbackServer(t)

	g := guard.New(guard.WithHooks(NewURLFetchHook()))
	g.Enable()
	defer g.Disable()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
}

func TestURLFetchHook_DeniesUnlistedURL(t *testing.T) {
	g := guard.New(guard.WithHooks(NewURLFetchHook()))
	g.Enable()
	defer g.Disable()

	resp, err := http.Get("http://denied.test/export")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, neterrors.ErrDenied))

	var denied *neterrors.DeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, "denied.test", denied.Host)
	assert.Equal(t, CategoryURLFetch, denied.Category)
}

func TestURLFetchHook_WhitelistedHostNotDenied(t *testing.T) {
	g := guard.New(guard.WithHooks(NewURLFetchHook()))
	g.Enable()
	defer g.Disable()

	// The .test TLD never resolves, so an allowed fetch fails with a
	// transport error; the point is that it is no longer a denial.
	g.AddAllowedHost("denied.test")
	_, err := http.Get("http://denied.test/")
	require.Error(t, err)
	assert.False(t, errors.Is(err, neterrors.ErrDenied))
}
