/*
Package recorder captures responses from a live database for later replay.

A Recorder runs a query on a real *sql.DB and registers the rows it returns
under the same query and parameters, so the replay registry can be seeded
from known-good results instead of hand-written payloads.

	rec, _ := recorder.New(recorder.Config{DB: db, Registry: reg})
	id, err := rec.Record(ctx, "SELECT id, total FROM orders WHERE id = ?", 42)

Binary values are stored as strings. Values from DECIMAL, NUMERIC and NUMBER
columns are stored as decimal.Decimal so they keep their precision.
*/
package recorder
