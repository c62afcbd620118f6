package recorder

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tarmac-project/sqlreplay"
	"github.com/tarmac-project/sqlreplay/cursor"
	"github.com/tarmac-project/sqlreplay/registry"
	_ "modernc.org/sqlite"
)

const byID = "SELECT id, name, price, payload, note FROM items WHERE id = ?"

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open returned error: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL, price DECIMAL(10,2), payload BLOB, note TEXT)`,
		`INSERT INTO items (id, name, price, payload, note) VALUES (1, 'widget', 12.5, x'68656c6c6f', NULL)`,
		`INSERT INTO items (id, name, price, payload, note) VALUES (2, 'gadget', 3, x'', 'boxed')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	return db
}

func TestNew(t *testing.T) {
	t.Parallel()

	db := openDB(t)
	reg := registry.New(registry.Config{})

	tt := []struct {
		name string
		cfg  Config
		err  error
	}{
		{"missing db", Config{Registry: reg}, sqlreplay.ErrMissingConfig},
		{"missing registry", Config{DB: db}, sqlreplay.ErrMissingConfig},
		{"valid", Config{DB: db, Registry: reg}, nil},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tc.cfg); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestRecordAndReplay(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{})
	rec, err := New(Config{DB: openDB(t), Registry: reg})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	id, err := rec.Record(context.Background(), byID, 1)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	b, ok := reg.Find(id)
	if !ok {
		t.Fatalf("binding %d not registered", id)
	}
	if b.Ephemeral {
		t.Fatal("expected a persistent binding")
	}

	c, err := cursor.New(cursor.Config{Registry: reg})
	if err != nil {
		t.Fatalf("cursor.New returned error: %v", err)
	}
	c.Execute(byID, 1)
	got := c.FetchOne()

	if got["id"] != int64(1) {
		t.Fatalf("expected id 1, got %#v", got["id"])
	}
	if got["name"] != "widget" {
		t.Fatalf("expected widget, got %#v", got["name"])
	}
	if got["payload"] != "hello" {
		t.Fatalf("expected the blob as a string, got %#v", got["payload"])
	}
	if v, ok := got["note"]; !ok || v != nil {
		t.Fatalf("expected a nil note, got %#v", v)
	}
	price, ok := got["price"].(decimal.Decimal)
	if !ok {
		t.Fatalf("expected price as decimal.Decimal, got %T", got["price"])
	}
	if !price.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected price 12.5, got %s", price)
	}

	// Other parameters fall through to the default response.
	c.Execute(byID, 2)
	if len(c.FetchOne()) != 0 {
		t.Fatal("expected no response for an unrecorded parameter")
	}
}

func TestRecordWildcard(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{})
	rec, err := New(Config{DB: openDB(t), Registry: reg, Ephemeral: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	query := "SELECT id, name FROM items ORDER BY id"
	id, err := rec.Record(context.Background(), query)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	b, _ := reg.Find(id)
	if b.Params != nil {
		t.Fatalf("expected wildcard params, got %v", b.Params)
	}
	if !b.Ephemeral {
		t.Fatal("expected an ephemeral binding")
	}

	c, _ := cursor.New(cursor.Config{Registry: reg})
	c.Execute(query, "anything")
	rows := registry.AsRows(c.FetchAll())
	if len(rows) != 2 || rows[1]["name"] != "gadget" {
		t.Fatalf("unexpected rows %v", rows)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected the ephemeral recording to be consumed, %d left", reg.Len())
	}
}

func TestRecordDuplicate(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{})
	rec, _ := New(Config{DB: openDB(t), Registry: reg})

	if _, err := rec.Record(context.Background(), byID, 1); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if _, err := rec.Record(context.Background(), byID, 1.0); !errors.Is(err, sqlreplay.ErrDuplicateQuery) {
		t.Fatalf("expected ErrDuplicateQuery, got %v", err)
	}
}

func TestRecordErrors(t *testing.T) {
	t.Parallel()

	reg := registry.New(registry.Config{})
	rec, _ := New(Config{DB: openDB(t), Registry: reg})

	tt := []struct {
		name  string
		query string
		err   error
	}{
		{"empty query", "", sqlreplay.ErrInvalidQuery},
		{"bad sql", "SELECT FROM nowhere", ErrQuery},
		{"missing table", "SELECT * FROM missing", ErrQuery},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := rec.Record(context.Background(), tc.query); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
	if reg.Len() != 0 {
		t.Fatalf("expected nothing registered, got %d", reg.Len())
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name   string
		dbType string
		in     any
		want   any
	}{
		{"nil", "DECIMAL", nil, nil},
		{"bytes", "BLOB", []byte("abc"), "abc"},
		{"text", "TEXT", "abc", "abc"},
		{"int", "INTEGER", int64(4), int64(4)},
		{"decimal int", "DECIMAL(10,2)", int64(4), decimal.NewFromInt(4)},
		{"numeric float", "NUMERIC", 1.25, decimal.RequireFromString("1.25")},
		{"number string", "number(38,0)", "123456789012345678901234567890", decimal.RequireFromString("123456789012345678901234567890")},
		{"numeric bytes", "NUMERIC", []byte("0.1"), decimal.RequireFromString("0.1")},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := convert(tc.dbType, tc.in)
			if err != nil {
				t.Fatalf("convert returned error: %v", err)
			}
			if want, ok := tc.want.(decimal.Decimal); ok {
				d, ok := got.(decimal.Decimal)
				if !ok || !d.Equal(want) {
					t.Fatalf("expected %s, got %#v", want, got)
				}
				return
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}

	if _, err := convert("NUMERIC", "not a number"); err == nil {
		t.Fatal("expected an error for a malformed decimal")
	}
}
