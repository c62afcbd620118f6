package sqldriver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"

	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/cursor"
	"github.com/tarmac-project/sqlreplay/registry"
)

// ErrUnsupportedValue is returned while scanning a row holding a value that
// database/sql cannot represent, such as a nested record.
var ErrUnsupportedValue = errors.New("unsupported value")

// OpenDB returns a *sql.DB answering every statement from the connector's
// registry. The driver is not registered globally.
func OpenDB(c *cursor.Connector) *sql.DB {
	return sql.OpenDB(&connector{d: &Driver{Connector: c}})
}

// Driver opens connections replaying from a Connector. The data source name
// is ignored.
type Driver struct {
	Connector *cursor.Connector
}

// Open implements driver.Driver.
func (d *Driver) Open(string) (driver.Conn, error) {
	if d.Connector == nil {
		return nil, sqlreplay.ErrMissingConfig
	}
	return &conn{cur: d.Connector.Cursor()}, nil
}

type connector struct {
	d *Driver
}

func (c *connector) Connect(ctx context.Context) (driver.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.d.Open("")
}

func (c *connector) Driver() driver.Driver { return c.d }

type conn struct {
	cur *cursor.Cursor
}

var (
	_ driver.QueryerContext = (*conn)(nil)
	_ driver.ExecerContext  = (*conn)(nil)
	_ driver.ConnBeginTx    = (*conn)(nil)
)

func (c *conn) run(ctx context.Context, query string, args []driver.NamedValue) (registry.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, sqlreplay.ErrInvalidQuery
	}

	if len(args) == 0 {
		c.cur.Execute(query)
	} else {
		params := make([]any, len(args))
		for i, a := range args {
			params[i] = a.Value
		}
		c.cur.Execute(query, params...)
	}
	return registry.AsRows(c.cur.FetchAll()), nil
}

func (c *conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	data, err := c.run(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return &rows{cols: data.Columns(), data: data}, nil
}

func (c *conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	data, err := c.run(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return driver.RowsAffected(len(data)), nil
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return &stmt{c: c, query: query}, nil
}

func (c *conn) Begin() (driver.Tx, error) { return tx{}, nil }

func (c *conn) BeginTx(ctx context.Context, _ driver.TxOptions) (driver.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return tx{}, nil
}

func (c *conn) Close() error { return nil }

// tx accepts commit and rollback without effect.
type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type stmt struct {
	c     *conn
	query string
}

func (s *stmt) Close() error  { return nil }
func (s *stmt) NumInput() int { return -1 }

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.c.ExecContext(context.Background(), s.query, named(args))
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.c.QueryContext(context.Background(), s.query, named(args))
}

func (s *stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	return s.c.ExecContext(ctx, s.query, args)
}

func (s *stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.c.QueryContext(ctx, s.query, args)
}

func named(args []driver.Value) []driver.NamedValue {
	out := make([]driver.NamedValue, len(args))
	for i, v := range args {
		out[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return out
}

type rows struct {
	cols []string
	data registry.Rows
	pos  int
}

func (r *rows) Columns() []string { return r.cols }

func (r *rows) Close() error {
	r.pos = len(r.data)
	return nil
}

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	rec := r.data[r.pos]
	r.pos++

	for i, col := range r.cols {
		v, err := driver.DefaultParameterConverter.ConvertValue(rec[col])
		if err != nil {
			return fmt.Errorf("%w: column %s: %w", ErrUnsupportedValue, col, err)
		}
		dest[i] = v
	}
	return nil
}
