package cursor

import (
	"fmt"

	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/registry"
)

// DefaultArraySize is the page size used by FetchMany when nothing else sets one.
const DefaultArraySize = 10

// Config controls construction of a Cursor.
type Config struct {
	// Registry resolves executed queries. Required.
	Registry *registry.Registry

	// Override, when active, replaces the result of every fetch.
	Override Override

	// ArraySize seeds the cursor's ArraySize. Defaults to DefaultArraySize.
	ArraySize int

	// Logger receives execution traces.
	Logger logging.Client
}

// Cursor replays registered responses through an execute/fetch interface.
type Cursor struct {
	// ArraySize is the page size FetchMany uses when called without one.
	ArraySize int

	registry *registry.Registry
	override Override
	log      logging.Client

	query  string
	params registry.Params

	pageStart int
	pageID    int64
	paging    bool
}

// New creates a Cursor bound to cfg.Registry.
func New(cfg Config) (*Cursor, error) {
	if cfg.Registry == nil {
		return nil, sqlreplay.ErrMissingConfig
	}

	size := cfg.ArraySize
	if size <= 0 {
		size = DefaultArraySize
	}

	return &Cursor{
		ArraySize: size,
		registry:  cfg.Registry,
		override:  cfg.Override,
		log:       logging.OrDefault(cfg.Logger, "cursor"),
	}, nil
}

// Execute stores the query and its parameters and resolves the response
// immediately. Without params the query matches any wildcard binding.
func (c *Cursor) Execute(query string, params ...any) {
	c.query = query
	c.params = nil
	if params != nil {
		c.params = registry.Params(params)
	}
	c.log.Debug(fmt.Sprintf("execute %q with %d params", query, len(params)))
	c.resolve()
}

// ExecuteAsync behaves exactly like Execute. Results are available at once.
func (c *Cursor) ExecuteAsync(query string, params ...any) {
	c.Execute(query, params...)
}

func (c *Cursor) resolve() *registry.Binding {
	return c.registry.Resolve(c.query, c.params)
}

func (c *Cursor) last() *registry.Binding {
	if b := c.registry.Last(); b != nil {
		return b
	}
	return c.registry.Default()
}

func (c *Cursor) forced() (registry.Payload, bool) {
	if c.override == nil {
		return nil, false
	}
	p := c.override.Response()
	if registry.IsEmpty(p) {
		return nil, false
	}
	return p, true
}

// FetchOne returns the first record of the response.
//
// For a multi-row response the first row is returned and nothing else changes.
// Any other response is resolved again from the stored query, so an ephemeral
// single-record binding is consumed by the repeat lookup.
func (c *Cursor) FetchOne() registry.Record {
	if p, ok := c.forced(); ok {
		return registry.First(p)
	}
	if rows, ok := c.last().Payload.(registry.Rows); ok && len(rows) > 1 {
		return rows[0]
	}
	return registry.First(c.resolve().Payload)
}

// FetchAll returns the whole response of the last execution.
func (c *Cursor) FetchAll() registry.Payload {
	if p, ok := c.forced(); ok {
		return p
	}
	return c.last().Payload
}

// FetchMany returns the next page of the response.
//
// The page size is the binding's forced PageSize when set, else size when
// positive, else ArraySize. Paging restarts whenever the last executed binding
// changes, and keeps advancing past the end, returning empty pages.
func (c *Cursor) FetchMany(size int) registry.Rows {
	if p, ok := c.forced(); ok {
		return registry.AsRows(p)
	}

	b := c.last()
	switch {
	case b.PageSize > 0:
		size = b.PageSize
	case size > 0:
	case c.ArraySize > 0:
		size = c.ArraySize
	default:
		size = DefaultArraySize
	}

	if !c.paging || c.pageID != b.ID {
		c.pageStart = 0
		c.pageID = b.ID
		c.paging = true
	}

	rows := registry.AsRows(b.Payload)
	start := min(c.pageStart, len(rows))
	end := min(c.pageStart+size, len(rows))
	c.pageStart += size

	c.registry.Metrics().PageSize.Observe(float64(size))
	return rows[start:end:end]
}

// QueryID returns the id of the last executed binding.
func (c *Cursor) QueryID() (int64, bool) {
	b := c.registry.Last()
	if b == nil {
		return 0, false
	}
	return b.ID, true
}

// LoadByID points the cursor at a previously executed binding so its response
// can be fetched again. The binding must still be registered; otherwise the
// cursor is reset and fetches return the default response.
func (c *Cursor) LoadByID(id int64) {
	b, ok := c.registry.Find(id)
	if !ok {
		c.query = ""
		c.params = nil
		c.registry.SetLast(c.registry.Default())
		c.log.Debug(fmt.Sprintf("query id %d is no longer registered", id))
		return
	}
	c.query = b.Query
	c.params = b.Params
	c.registry.SetLast(b)
}

// Close clears every binding in the registry, not only those this cursor used.
func (c *Cursor) Close() error {
	c.registry.Clear()
	return nil
}
