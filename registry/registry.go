package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/metrics"
)

// Config controls construction of a Registry.
type Config struct {
	// IDs generates binding handles. Defaults to a Sequence starting at DefaultFirstID.
	IDs IDGenerator

	// Logger receives registration and lookup traces.
	Logger logging.Client

	// Metrics receives lookup and binding counts.
	Metrics metrics.Client
}

// Entry describes a binding to register.
type Entry struct {
	// Query is the exact query text to match.
	Query string

	// Params narrows the match to one parameter list. Leave nil to match any parameters.
	Params Params

	// Payload is the canned response. A nil payload is stored as empty Rows.
	Payload Payload

	// PageSize, when positive, forces the page size of incremental fetches.
	PageSize int
}

// Registry owns the registered bindings and the last executed binding.
type Registry struct {
	bindings []*Binding
	last     *Binding
	def      *Binding
	scopes   []*Scope

	ids     IDGenerator
	log     logging.Client
	metrics *metrics.Replay
}

// New creates an empty Registry.
func New(cfg Config) *Registry {
	ids := cfg.IDs
	if ids == nil {
		ids = NewSequence(0)
	}

	m, err := metrics.NewReplay(cfg.Metrics)
	if err != nil {
		m = &metrics.Replay{}
	}

	return &Registry{
		def:     &Binding{ID: ids.NextID(), Payload: Rows{}},
		ids:     ids,
		log:     logging.OrDefault(cfg.Logger, "registry"),
		metrics: m,
	}
}

// Register adds a binding that stays active until removed.
func (r *Registry) Register(e Entry) (int64, error) {
	return r.add(e, false)
}

// RegisterEphemeral adds a binding that is removed the first time it is matched.
func (r *Registry) RegisterEphemeral(e Entry) (int64, error) {
	return r.add(e, true)
}

func (r *Registry) add(e Entry, ephemeral bool) (int64, error) {
	if err := r.checkDuplicate(e.Query, e.Params, ephemeral); err != nil {
		r.log.Warn(err.Error())
		return 0, err
	}

	var params Params
	if e.Params != nil {
		params = make(Params, len(e.Params))
		copy(params, e.Params)
	}

	payload := e.Payload
	if payload == nil {
		payload = Rows{}
	}

	b := &Binding{
		ID:        r.ids.NextID(),
		Query:     e.Query,
		Params:    params,
		Payload:   payload,
		Ephemeral: ephemeral,
		PageSize:  e.PageSize,
	}
	r.bindings = append(r.bindings, b)
	r.metrics.Bindings.Inc()
	r.log.Debug(fmt.Sprintf("registered %s with id %d", b, b.ID))

	return b.ID, nil
}

func (r *Registry) checkDuplicate(query string, params Params, ephemeral bool) error {
	for _, b := range r.bindings {
		if !b.matches(query, params) {
			continue
		}
		detail := fmt.Errorf("conflicts with %s", b)
		if b.Ephemeral != ephemeral {
			return errors.Join(sqlreplay.ErrDuplicateQuery, sqlreplay.ErrMixedEphemeral, detail)
		}
		return errors.Join(sqlreplay.ErrDuplicateQuery, detail)
	}
	return nil
}

// Lookup finds the binding for a query without changing any state.
//
// An exact parameter match wins over a wildcard binding; among equals the
// earliest registration wins. When nothing matches the default binding is returned.
func (r *Registry) Lookup(query string, params Params) *Binding {
	var wildcard *Binding
	for _, b := range r.bindings {
		if b.Query != query {
			continue
		}
		if ParamsEqual(b.Params, params) {
			return b
		}
		if wildcard == nil && b.Params == nil {
			wildcard = b
		}
	}
	if wildcard != nil {
		return wildcard
	}
	return r.def
}

// Consume removes b when it is ephemeral. The default binding is never removed.
func (r *Registry) Consume(b *Binding) {
	if b == nil || b == r.def || !b.Ephemeral {
		return
	}
	if i := slices.Index(r.bindings, b); i >= 0 {
		r.bindings = slices.Delete(r.bindings, i, i+1)
		r.metrics.Consumed.Inc()
		r.metrics.Bindings.Dec()
		r.log.Debug(fmt.Sprintf("consumed ephemeral binding %d", b.ID))
	}
}

// Resolve performs one execution: Lookup, then Consume, then records the
// result as the last executed binding.
func (r *Registry) Resolve(query string, params Params) *Binding {
	b := r.Lookup(query, params)
	r.Consume(b)
	r.last = b

	if b == r.def {
		r.metrics.Misses.Inc()
		r.log.Trace(fmt.Sprintf("no binding for %q, using default", truncate(query)))
		return b
	}

	r.metrics.Hits.Inc()
	r.log.Trace(fmt.Sprintf("resolved %q to binding %d", truncate(query), b.ID))
	for _, s := range r.scopes {
		s.track(b)
	}
	return b
}

// Find returns the active binding with the given id.
func (r *Registry) Find(id int64) (*Binding, bool) {
	for _, b := range r.bindings {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// RemoveByID removes the binding with the given id and reports whether it was present.
func (r *Registry) RemoveByID(id int64) bool {
	i := slices.IndexFunc(r.bindings, func(b *Binding) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	r.bindings = slices.Delete(r.bindings, i, i+1)
	r.metrics.Bindings.Dec()
	r.log.Debug(fmt.Sprintf("removed binding %d", id))
	return true
}

// Clear drops every binding and forgets the last executed one. The default binding stays.
func (r *Registry) Clear() {
	for range r.bindings {
		r.metrics.Bindings.Dec()
	}
	r.bindings = nil
	r.last = nil
	r.log.Debug("cleared all bindings")
}

// Last returns the binding resolved by the most recent execution, or nil.
func (r *Registry) Last() *Binding { return r.last }

// SetLast marks b as the last executed binding without resolving anything.
func (r *Registry) SetLast(b *Binding) { r.last = b }

// Default returns the binding used when nothing matches.
func (r *Registry) Default() *Binding { return r.def }

// Bindings returns a snapshot of the active bindings in registration order.
func (r *Registry) Bindings() []*Binding { return slices.Clone(r.bindings) }

// Len returns the number of active bindings.
func (r *Registry) Len() int { return len(r.bindings) }

// Metrics returns the instruments this registry reports to.
func (r *Registry) Metrics() *metrics.Replay { return r.metrics }
