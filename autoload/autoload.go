// Package autoload activates egress enforcement as an import side effect:
//
//	import _ "github.com/netlock-dev/netlock/autoload"
//
// Activation is skipped when NETLOCK_AUTO_ENFORCE_DISABLE is truthy, and
// NETLOCK_DEBUG_LOGGING turns on diagnostics at load. Activation failures
// are swallowed so the host process still starts.
package autoload

import (
	"github.com/netlock-dev/netlock"
	"github.com/netlock-dev/netlock/config"
)

func init() {
	defer func() {
		// Best effort: a failed activation must not abort startup.
		_ = recover()
	}()

	if config.DebugLogging() {
		netlock.SetDebugLogging(true)
	}
	if config.AutoEnforceDisabled() {
		return
	}
	netlock.EnableEnforcement()
}
