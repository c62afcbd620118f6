package cursor

import "github.com/tarmac-project/sqlreplay/registry"

// Override forces the result of every fetch regardless of registered bindings.
// A nil or empty Response means no override is active.
type Override interface {
	Response() registry.Payload
}

// OverrideFunc adapts a function to Override.
type OverrideFunc func() registry.Payload

// Response calls f.
func (f OverrideFunc) Response() registry.Payload { return f() }

// Slot is a settable Override. The zero value is inactive.
type Slot struct {
	payload registry.Payload
}

// Set makes p the response of every fetch until Clear is called.
func (s *Slot) Set(p registry.Payload) { s.payload = p }

// Clear deactivates the override.
func (s *Slot) Clear() { s.payload = nil }

// Response returns the current override, or nil.
func (s *Slot) Response() registry.Payload {
	if s == nil {
		return nil
	}
	return s.payload
}
