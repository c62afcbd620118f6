package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/logging"
	"github.com/tarmac-project/sqlreplay/registry"
)

var (
	// ErrQuery is returned when the live query fails.
	ErrQuery = errors.New("recording query failed")

	// ErrScan is returned when a result row cannot be read.
	ErrScan = errors.New("unable to scan recorded row")
)

// numericTypes are database type prefixes whose values are kept as decimals.
var numericTypes = []string{"DECIMAL", "NUMERIC", "NUMBER"}

// Config controls construction of a Recorder.
type Config struct {
	// DB is the live database queries are recorded from. Required.
	DB *sql.DB

	// Registry receives the recorded bindings. Required.
	Registry *registry.Registry

	// Ephemeral registers recordings as single-use bindings.
	Ephemeral bool

	// Logger receives one entry per recording.
	Logger logging.Client
}

// Recorder runs queries against a live database and registers their results
// for replay.
type Recorder struct {
	db        *sql.DB
	registry  *registry.Registry
	ephemeral bool
	log       logging.Client
}

// New creates a Recorder.
func New(cfg Config) (*Recorder, error) {
	if cfg.DB == nil || cfg.Registry == nil {
		return nil, sqlreplay.ErrMissingConfig
	}

	return &Recorder{
		db:        cfg.DB,
		registry:  cfg.Registry,
		ephemeral: cfg.Ephemeral,
		log:       logging.OrDefault(cfg.Logger, "recorder"),
	}, nil
}

// Record runs query with params and registers the result under the same query
// and params. Without params the binding is a wildcard.
func (r *Recorder) Record(ctx context.Context, query string, params ...any) (int64, error) {
	rows, err := r.Capture(ctx, query, params...)
	if err != nil {
		return 0, err
	}

	e := registry.Entry{Query: query, Payload: rows}
	if len(params) > 0 {
		e.Params = registry.Params(params)
	}

	var id int64
	if r.ephemeral {
		id, err = r.registry.RegisterEphemeral(e)
	} else {
		id, err = r.registry.Register(e)
	}
	if err != nil {
		return 0, err
	}

	r.log.Info(fmt.Sprintf("recorded %d rows for %q as binding %d", len(rows), query, id))
	return id, nil
}

// Capture runs query with params and returns the result as Rows without
// registering it.
func (r *Recorder) Capture(ctx context.Context, query string, params ...any) (registry.Rows, error) {
	if query == "" {
		return nil, sqlreplay.ErrInvalidQuery
	}

	res, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer res.Close()

	types, err := res.ColumnTypes()
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	out := registry.Rows{}
	for res.Next() {
		vals := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := res.Scan(ptrs...); err != nil {
			return nil, errors.Join(ErrScan, err)
		}

		rec := make(registry.Record, len(types))
		for i, ct := range types {
			v, err := convert(ct.DatabaseTypeName(), vals[i])
			if err != nil {
				return nil, errors.Join(ErrScan, fmt.Errorf("column %s: %w", ct.Name(), err))
			}
			rec[ct.Name()] = v
		}
		out = append(out, rec)
	}
	if err := res.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	return out, nil
}

func convert(dbType string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	if isNumeric(dbType) {
		switch n := v.(type) {
		case int64:
			return decimal.NewFromInt(n), nil
		case float64:
			return decimal.NewFromFloat(n), nil
		case string:
			return decimal.NewFromString(n)
		case []byte:
			return decimal.NewFromString(string(n))
		}
	}

	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return v, nil
}

func isNumeric(dbType string) bool {
	t := strings.ToUpper(dbType)
	for _, p := range numericTypes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}
