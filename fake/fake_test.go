package fake

import (
	"reflect"
	"testing"

	"github.com/tarmac-project/sqlreplay/registry"
)

var response = registry.Rows{{"response": "hi"}, {"hello there": "general kenobi"}}

func TestGenericStart(t *testing.T) {
	t.Cleanup(Reset)

	if Cursor() == nil {
		t.Fatal("expected a cursor")
	}
	if Conn().Registry() != Registry() {
		t.Fatal("default connector must share the default registry")
	}
}

func TestDefaultCursorUsesDefaultRegistry(t *testing.T) {
	t.Cleanup(Reset)

	if _, err := Registry().On("query").Return(response); err != nil {
		t.Fatalf("Return returned error: %v", err)
	}

	cur := Cursor()
	cur.Execute("query")
	if got := cur.FetchAll(); !reflect.DeepEqual(got, response) {
		t.Fatalf("want %v, got %v", response, got)
	}

	conn := Conn().Cursor()
	conn.Execute("query")
	if got := conn.FetchOne(); !reflect.DeepEqual(got, response[0]) {
		t.Fatalf("want %v, got %v", response[0], got)
	}
}

func TestDefaultOverride(t *testing.T) {
	t.Cleanup(Reset)

	Override().Set(registry.Record{"forced": "yes"})

	cur := Cursor()
	cur.Execute("asdf")
	if got := cur.FetchOne(); !reflect.DeepEqual(got, registry.Record{"forced": "yes"}) {
		t.Fatalf("override not applied, got %v", got)
	}
}

func TestReset(t *testing.T) {
	if _, err := Registry().On("query").Return(response); err != nil {
		t.Fatalf("Return returned error: %v", err)
	}
	Override().Set(response)

	Reset()

	if Registry().Len() != 0 {
		t.Fatalf("expected empty registry, have %d", Registry().Len())
	}
	if Override().Response() != nil {
		t.Fatal("expected the override to be cleared")
	}
}
