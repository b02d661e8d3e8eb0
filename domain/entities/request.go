package entities

// ConnectRequest represents an outbound connection attempt observed by a
// hook, normalized to the fields the policy decision needs.
type ConnectRequest struct {
	// Host is the destination hostname or IP literal, without port.
	Host string

	// Port is the destination port, 0 when the entry point carries none.
	Port int

	// Category names the hook that observed the attempt.
	Category string
}
