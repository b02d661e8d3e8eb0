// Package config provides the environment toggles and the optional
// on-disk allow policy. Enforcement never requires a file; the policy
// file only seeds the in-process whitelist.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/netlock-dev/netlock/domain/entities"
)

// Environment variables recognized at load time.
const (
	// EnvAutoEnforceDisable skips automatic enforcement activation when
	// truthy. Default is to auto-enable on autoload import.
	EnvAutoEnforceDisable = "NETLOCK_AUTO_ENFORCE_DISABLE"

	// EnvDebugLogging enables debug logging at load when truthy.
	EnvDebugLogging = "NETLOCK_DEBUG_LOGGING"
)

// validate is a package-level singleton; constructing a validator per
// call is expensive.
var validate = validator.New()

// Truthy reports whether an environment value counts as enabled:
// "1", "true" or "True".
func Truthy(value string) bool {
	return value == "1" || value == "true" || value == "True"
}

// AutoEnforceDisabled reports whether automatic activation is opted out.
func AutoEnforceDisabled() bool {
	return Truthy(os.Getenv(EnvAutoEnforceDisable))
}

// DebugLogging reports whether debug logging is requested at load.
func DebugLogging() bool {
	return Truthy(os.Getenv(EnvDebugLogging))
}

// LoadPolicyFile reads, parses and validates a YAML policy file.
func LoadPolicyFile(path string) (entities.PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.PolicyFile{}, fmt.Errorf("reading policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy parses and validates policy YAML.
func ParsePolicy(data []byte) (entities.PolicyFile, error) {
	var p entities.PolicyFile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return entities.PolicyFile{}, fmt.Errorf("parsing policy file: %w", err)
	}
	if err := validate.Struct(&p); err != nil {
		return entities.PolicyFile{}, fmt.Errorf("policy validation failed: %w", err)
	}
	return p, nil
}
