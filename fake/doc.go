/*
Package fake exposes process-wide default replay instances, so tests can start
without wiring a registry and connector themselves.

	func TestReport(t *testing.T) {
		t.Cleanup(fake.Reset)

		_, _ = fake.Registry().On("SELECT total FROM sales").Return(registry.Record{"total": 10})

		cur := fake.Cursor()
		cur.Execute("SELECT total FROM sales")
		// cur.FetchOne() == registry.Record{"total": 10}
	}

The defaults are shared by the whole test binary. Tests that use them must not
run in parallel with each other and should call Reset when done. Tests that
need isolation build their own registry.Registry and cursor.Connector.
*/
package fake
