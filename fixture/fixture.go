package fixture

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/registry"
)

const bindingsKey = "bindings"

var (
	// ErrRead is returned when a fixture cannot be read or parsed.
	ErrRead = errors.New("unable to read fixture")

	// ErrInvalidBinding is returned for a fixture entry that cannot be registered.
	ErrInvalidBinding = errors.New("invalid fixture binding")
)

// Config controls construction of a Loader.
type Config struct {
	// Registry receives the loaded bindings. Required.
	Registry *registry.Registry

	// Logger receives one entry per loaded fixture.
	Logger logging.Client
}

// Loader registers bindings described in fixture files.
type Loader struct {
	registry *registry.Registry
	log      logging.Client
}

// binding is one entry of the bindings list.
type binding struct {
	Query     string           `mapstructure:"query"`
	Params    []any            `mapstructure:"params"`
	Ephemeral bool             `mapstructure:"ephemeral"`
	PageSize  int              `mapstructure:"page_size"`
	Rows      []map[string]any `mapstructure:"rows"`
	Record    map[string]any   `mapstructure:"record"`
}

// New creates a Loader.
func New(cfg Config) (*Loader, error) {
	if cfg.Registry == nil {
		return nil, sqlreplay.ErrMissingConfig
	}
	return &Loader{
		registry: cfg.Registry,
		log:      logging.OrDefault(cfg.Logger, "fixture"),
	}, nil
}

// Load registers the bindings of the file at path into reg. The format follows
// the file extension.
func Load(path string, reg *registry.Registry) ([]int64, error) {
	l, err := New(Config{Registry: reg})
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

// LoadReader registers the bindings read from r into reg. format is any
// configuration type viper understands, such as "yaml", "json" or "toml".
func LoadReader(r io.Reader, format string, reg *registry.Registry) ([]int64, error) {
	l, err := New(Config{Registry: reg})
	if err != nil {
		return nil, err
	}
	return l.LoadReader(r, format)
}

// Load registers the bindings of the file at path.
func (l *Loader) Load(path string) ([]int64, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Join(ErrRead, err)
	}

	ids, err := l.register(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Info(fmt.Sprintf("loaded %d bindings from %s", len(ids), path))
	return ids, nil
}

// LoadReader registers the bindings read from r.
func (l *Loader) LoadReader(r io.Reader, format string) ([]int64, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Join(ErrRead, err)
	}

	ids, err := l.register(v)
	if err != nil {
		return nil, err
	}
	l.log.Info(fmt.Sprintf("loaded %d bindings from %s input", len(ids), format))
	return ids, nil
}

// register adds every binding in v. Nothing stays registered when an entry
// fails.
func (l *Loader) register(v *viper.Viper) ([]int64, error) {
	var list []binding
	if err := v.UnmarshalKey(bindingsKey, &list); err != nil {
		return nil, errors.Join(ErrRead, err)
	}
	raw, _ := v.Get(bindingsKey).([]any)

	ids := make([]int64, 0, len(list))
	for i, b := range list {
		var id int64
		e, err := entry(b, hasKey(raw, i, "params"))
		if err == nil {
			if b.Ephemeral {
				id, err = l.registry.RegisterEphemeral(e)
			} else {
				id, err = l.registry.Register(e)
			}
		}
		if err != nil {
			for _, id := range ids {
				l.registry.RemoveByID(id)
			}
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func entry(b binding, explicitParams bool) (registry.Entry, error) {
	if b.Query == "" {
		return registry.Entry{}, errors.Join(ErrInvalidBinding, sqlreplay.ErrInvalidQuery)
	}
	if b.Rows != nil && b.Record != nil {
		return registry.Entry{}, fmt.Errorf("%w: rows and record are exclusive", ErrInvalidBinding)
	}
	if b.PageSize < 0 {
		return registry.Entry{}, fmt.Errorf("%w: negative page_size %d", ErrInvalidBinding, b.PageSize)
	}

	e := registry.Entry{Query: b.Query, PageSize: b.PageSize}
	switch {
	case b.Params != nil:
		e.Params = registry.Params(b.Params)
	case explicitParams:
		e.Params = registry.Params{}
	}

	switch {
	case b.Record != nil:
		e.Payload = registry.Record(b.Record)
	case b.Rows != nil:
		rows := make(registry.Rows, len(b.Rows))
		for i, r := range b.Rows {
			rows[i] = registry.Record(r)
		}
		e.Payload = rows
	}
	return e, nil
}

// hasKey reports whether the i-th raw list entry sets key, so an explicit
// empty params list can be told apart from a missing one.
func hasKey(raw []any, i int, key string) bool {
	if i >= len(raw) {
		return false
	}
	switch m := raw[i].(type) {
	case map[string]any:
		_, ok := m[key]
		return ok
	case map[any]any:
		_, ok := m[key]
		return ok
	default:
		return false
	}
}
