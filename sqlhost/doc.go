/*
Package sqlhost serves the Tarmac sql capability from a replay connector.

A Tarmac function talks to SQL through host calls: it marshals an SQLQuery or
SQLExec protobuf message and hands it to the host under the "sql" capability.
Host.HostCall has the same signature as the waPC host call, so the function's
sql client can be configured with it directly and every query it sends is
answered from the connector's registry:

	conn := cursor.NewConnector(cursor.ConnectorConfig{})
	_, _ = conn.Registry().On("SELECT id, name FROM users").Return(registry.Rows{{"id": 1, "name": "alpha"}})

	host, _ := sqlhost.New(sqlhost.Config{Connector: conn})
	client, _ := sql.New(sql.Config{HostCall: host.HostCall})
	res, _ := client.Query("SELECT id, name FROM users")
	// res.Columns == [id name], res.Data == [{"id":1,"name":"alpha"}]

Query responses carry the sorted union of the row keys as columns and the rows
as a JSON array. Exec responses report the number of rows in the replayed
payload as rows affected. The sql capability has no bound parameters, so every
call resolves with none.
*/
package sqlhost
