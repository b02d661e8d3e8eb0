// Package schema provides JSON schema generation for the policy file.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/netlock-dev/netlock/domain/entities"
)

// PolicyFileSchema returns the JSON Schema (Draft 2020-12) of the on-disk
// policy format, for editor integration and CI validation of policy files.
func PolicyFileSchema() ([]byte, error) {
	return Generate(&entities.PolicyFile{})
}

// Generate creates a JSON schema from a Go struct using reflection.
func Generate(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	s := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
