package registry

import (
	"fmt"
	"slices"
)

// Scope removes a set of bindings when it is closed, whether or not they were
// ever matched.
type Scope struct {
	registry *Registry
	ids      []int64
	tracking bool
	closed   bool
}

// Scope opens a cleanup scope.
//
// With ids, exactly those bindings are removed on Close. Without ids, the scope
// captures every ephemeral binding active now and also every binding resolved
// while it is open.
func (r *Registry) Scope(ids ...int64) *Scope {
	s := &Scope{registry: r}
	if len(ids) > 0 {
		s.ids = slices.Clone(ids)
		return s
	}

	for _, b := range r.bindings {
		if b.Ephemeral {
			s.ids = append(s.ids, b.ID)
		}
	}
	s.tracking = true
	r.scopes = append(r.scopes, s)
	return s
}

// Ephemeral runs fn inside a Scope and closes it when fn returns or panics.
func (r *Registry) Ephemeral(fn func() error, ids ...int64) error {
	s := r.Scope(ids...)
	defer s.Close()
	return fn()
}

// IDs returns the binding ids the scope will remove.
func (s *Scope) IDs() []int64 { return slices.Clone(s.ids) }

func (s *Scope) track(b *Binding) {
	if !slices.Contains(s.ids, b.ID) {
		s.ids = append(s.ids, b.ID)
	}
}

// Close removes the captured bindings that are still registered and returns
// how many were removed. Closing twice is a no-op.
func (s *Scope) Close() int {
	if s.closed {
		return 0
	}
	s.closed = true

	r := s.registry
	if s.tracking {
		r.scopes = slices.DeleteFunc(r.scopes, func(o *Scope) bool { return o == s })
	}

	var removed int
	for _, id := range s.ids {
		if r.RemoveByID(id) {
			removed++
		}
	}
	r.log.Debug(fmt.Sprintf("scope closed, removed %d of %d bindings", removed, len(s.ids)))
	return removed
}
