package sqlreplay

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "tarmac"

// HostCall defines the waPC host function signature shared by host-backed components.
type HostCall func(string, string, string, []byte) ([]byte, error)

// RuntimeConfig carries configuration that is used during creation of host-backed components.
type RuntimeConfig struct {
	// Namespace is the function namespace used to scope host interactions.
	Namespace string
}

// WithDefaults returns a copy of the configuration with empty fields replaced by defaults.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}

// DefaultHostCall returns the host call used when a component is not given one.
//
// Inside a WebAssembly guest this is the waPC host call. Everywhere else it is a
// no-op, which keeps logging and metrics silent in ordinary test binaries.
func DefaultHostCall() HostCall {
	return defaultHostCall
}
