package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeniedError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *DeniedError
		want string
	}{
		{
			name: "host and port",
			err:  &DeniedError{Host: "example.com", Port: 443, Category: "dial"},
			want: "netlock: dial to example.com:443 denied by egress policy",
		},
		{
			name: "host only",
			err:  &DeniedError{Host: "example.com", Category: "url-fetch"},
			want: "netlock: url-fetch to example.com denied by egress policy",
		},
		{
			name: "no host",
			err:  &DeniedError{Category: "raw-conn"},
			want: "netlock: raw-conn denied by egress policy",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestDeniedError_MatchesSentinel(t *testing.T) {
	err := &DeniedError{Host: "example.com", Port: 80, Category: "dial"}
	assert.True(t, stdErrors.Is(err, ErrDenied))

	wrapped := fmt.Errorf("request failed: %w", err)
	assert.True(t, stdErrors.Is(wrapped, ErrDenied))

	var denied *DeniedError
	assert.True(t, stdErrors.As(wrapped, &denied))
	assert.Equal(t, "example.com", denied.Host)
}

func TestInstallError_Unwrap(t *testing.T) {
	cause := stdErrors.New("entry point unavailable")
	err := &InstallError{Category: "session", Err: cause}

	assert.True(t, stdErrors.Is(err, cause))
	assert.Contains(t, err.Error(), "session")
	assert.False(t, stdErrors.Is(err, ErrDenied))
}
