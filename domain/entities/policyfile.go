package entities

// PolicyFile is the on-disk allow policy consumed by config.LoadPolicyFile
// and by the netlockctl tool. Enforcement itself never touches disk; the
// file is a convenience for seeding the in-process whitelist.
type PolicyFile struct {
	// Allow lists whitelist entries: bare hostnames or IPs
	// ("api.example.com"), domain suffixes ("example.com"), glob patterns
	// ("*.example.com") or CIDR ranges ("10.0.0.0/8").
	Allow []string `json:"allow" yaml:"allow" validate:"dive,required"`

	// Debug enables diagnostic logging when the policy is applied.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`
}
