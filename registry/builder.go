package registry

// Builder registers a binding fluently:
//
//	id, err := reg.On("SELECT * FROM users WHERE id = ?").WithParams(7).Return(registry.Rows{{"id": 7}})
type Builder struct {
	r     *Registry
	entry Entry
}

// On starts a registration for query.
func (r *Registry) On(query string) *Builder {
	return &Builder{r: r, entry: Entry{Query: query}}
}

// WithParams narrows the binding to exactly these parameters. Calling it with
// no arguments binds to an empty parameter list, which is not a wildcard.
func (b *Builder) WithParams(params ...any) *Builder {
	b.entry.Params = append(Params{}, params...)
	return b
}

// PageSize forces the page size used when the payload is fetched incrementally.
func (b *Builder) PageSize(n int) *Builder {
	b.entry.PageSize = n
	return b
}

// Return registers p as a persistent response.
func (b *Builder) Return(p Payload) (int64, error) {
	b.entry.Payload = p
	return b.r.Register(b.entry)
}

// ReturnOnce registers p as an ephemeral response.
func (b *Builder) ReturnOnce(p Payload) (int64, error) {
	b.entry.Payload = p
	return b.r.RegisterEphemeral(b.entry)
}
