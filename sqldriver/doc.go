/*
Package sqldriver exposes a replay connector through database/sql.

Code written against *sql.DB can be pointed at registered responses without a
database server:

	conn := cursor.NewConnector(cursor.ConnectorConfig{})
	_, _ = conn.Registry().On("SELECT name FROM users WHERE id = ?").WithParams(7).Return(registry.Record{"name": "alpha"})

	db := sqldriver.OpenDB(conn)
	var name string
	err := db.QueryRow("SELECT name FROM users WHERE id = ?", 7).Scan(&name)

Statement arguments become the binding parameters; a statement without
arguments matches wildcard bindings. Result columns are the sorted union of
the record keys and a key missing from a record scans as NULL. Exec reports
the number of replayed rows as rows affected. Transactions are accepted and
have no effect.
*/
package sqldriver
