/*
Package cursor provides the execute/fetch surface of the replay double.

A Cursor stands in for a warehouse client cursor. Execute resolves the query
against a registry.Registry at once; FetchOne, FetchAll and FetchMany then read
the resolved response:

	reg := registry.New(registry.Config{})
	_, _ = reg.On("SELECT * FROM t").Return(registry.Rows{{"a": 1}, {"b": 2}, {"c": 3}})

	cur, _ := cursor.New(cursor.Config{Registry: reg})
	cur.ArraySize = 2
	cur.Execute("SELECT * FROM t")
	cur.FetchMany(0) // [{a:1} {b:2}]
	cur.FetchMany(0) // [{c:3}]
	cur.FetchMany(0) // []

FetchMany keeps its position per binding id and restarts when a different
binding is executed. A binding registered with a PageSize ignores both the
cursor's ArraySize and the size passed in.

An Override replaces every fetch result, bypassing matching and pagination.
Slot is a settable Override meant to be shared by the cursors of a test.

Connector hands out cursors over a shared registry and answers the
status-polling calls of asynchronous clients. Replayed queries are always
finished.
*/
package cursor
