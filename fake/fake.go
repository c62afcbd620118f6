package fake

import (
	"github.com/tarmac-project/sqlreplay/cursor"
	"github.com/tarmac-project/sqlreplay/registry"
)

var (
	defaultRegistry = registry.New(registry.Config{})
	defaultOverride = &cursor.Slot{}
	defaultConn     = cursor.NewConnector(cursor.ConnectorConfig{
		Registry: defaultRegistry,
		Override: defaultOverride,
	})
)

// Registry returns the process-wide default registry.
func Registry() *registry.Registry { return defaultRegistry }

// Override returns the override slot shared by every default cursor.
func Override() *cursor.Slot { return defaultOverride }

// Conn returns the connector bound to the default registry and override.
func Conn() *cursor.Connector { return defaultConn }

// Cursor returns a ready cursor bound to the default registry and override.
func Cursor() *cursor.Cursor { return defaultConn.Cursor() }

// Reset clears the default registry and the override slot.
func Reset() {
	defaultRegistry.Clear()
	defaultOverride.Clear()
}
