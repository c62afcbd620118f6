package metrics

// Replay bundles the instruments the replay components emit to.
// Every field may be nil; emission on a nil handle is a no-op.
type Replay struct {
	// Hits counts lookups that resolved to a registered binding.
	Hits *Counter

	// Misses counts lookups that fell back to the default binding.
	Misses *Counter

	// Consumed counts ephemeral bindings removed after a match.
	Consumed *Counter

	// Bindings tracks the number of registered bindings.
	Bindings *Gauge

	// PageSize observes the effective page size of each incremental fetch.
	PageSize *Histogram
}

// NewReplay builds the replay instruments from c. When c is nil a client with
// the default host call is used.
func NewReplay(c Client) (*Replay, error) {
	if c == nil {
		hm, err := New(Config{})
		if err != nil {
			return nil, err
		}
		c = hm
	}

	var (
		r   Replay
		err error
	)
	if r.Hits, err = c.NewCounter(NameLookupHits); err != nil {
		return nil, err
	}
	if r.Misses, err = c.NewCounter(NameLookupMisses); err != nil {
		return nil, err
	}
	if r.Consumed, err = c.NewCounter(NameEphemeralConsumed); err != nil {
		return nil, err
	}
	if r.Bindings, err = c.NewGauge(NameBindings); err != nil {
		return nil, err
	}
	if r.PageSize, err = c.NewHistogram(NamePageSize); err != nil {
		return nil, err
	}
	return &r, nil
}
