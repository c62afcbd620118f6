package cursor

import (
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/registry"
)

// QueryStatus mirrors the status codes a warehouse reports for submitted queries.
type QueryStatus int

const (
	StatusRunning QueryStatus = iota
	StatusAborting
	StatusSuccess
	StatusFailedWithError
	StatusAborted
	StatusQueued
)

// String returns the status name.
func (s QueryStatus) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING"
	case StatusAborting:
		return "ABORTING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailedWithError:
		return "FAILED_WITH_ERROR"
	case StatusAborted:
		return "ABORTED"
	case StatusQueued:
		return "QUEUED"
	default:
		return "UNKNOWN"
	}
}

// ConnectorConfig controls construction of a Connector.
type ConnectorConfig struct {
	// Registry backs every cursor. A new empty Registry is created when nil.
	Registry *registry.Registry

	// Override is handed to every cursor.
	Override Override

	// Logger is handed to every cursor.
	Logger logging.Client
}

// Connector hands out cursors sharing one Registry and answers status polls.
type Connector struct {
	registry *registry.Registry
	override Override
	log      logging.Client
}

// NewConnector creates a Connector.
func NewConnector(cfg ConnectorConfig) *Connector {
	reg := cfg.Registry
	if reg == nil {
		reg = registry.New(registry.Config{Logger: cfg.Logger})
	}
	return &Connector{
		registry: reg,
		override: cfg.Override,
		log:      cfg.Logger,
	}
}

// Registry returns the registry shared by this connector's cursors.
func (c *Connector) Registry() *registry.Registry { return c.registry }

// Cursor returns a new cursor bound to the connector's registry.
func (c *Connector) Cursor() *Cursor {
	// The registry is always set, so New cannot fail here.
	cur, _ := New(Config{Registry: c.registry, Override: c.override, Logger: c.log})
	return cur
}

// QueryStatus reports the status of a submitted query. Replayed queries finish
// as soon as they are executed, so this is always StatusSuccess.
func (c *Connector) QueryStatus(int64) QueryStatus { return StatusSuccess }

// IsStillRunning reports whether a query with the given status is still in
// flight. Replayed queries never are.
func (c *Connector) IsStillRunning(QueryStatus) bool { return false }

// Close clears every binding in the registry.
func (c *Connector) Close() error {
	c.registry.Clear()
	return nil
}
