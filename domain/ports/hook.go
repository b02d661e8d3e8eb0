package ports

// Hook wraps one networking entry-point category. Install captures the
// current original handle and puts the intercepting implementation in its
// place; Uninstall restores the captured original. Install is idempotent:
// installing an already-installed hook must not double-wrap or lose the
// true original. Uninstall of a never-installed hook is a no-op.
type Hook interface {
	// Category returns the entry-point category this hook covers
	// (e.g. "dial", "http-transport").
	Category() string

	// Install captures the original handle and activates interception.
	// The gate is consulted on every intercepted call.
	Install(gate Gate) error

	// Uninstall restores the original handle.
	Uninstall()
}
