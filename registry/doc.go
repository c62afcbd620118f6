/*
Package registry holds the canned query responses served by a replay cursor.

A Registry is an ordered list of bindings. Each binding maps exact query text,
and optionally an exact parameter list, to a Payload. Resolution follows three
rules:

  - A binding whose parameters equal the executed parameters wins.
  - Otherwise the first binding registered without parameters (a wildcard) wins.
  - Otherwise the default binding, whose payload is empty Rows, is returned.

A binding registered with parameters never answers a query executed with
different or no parameters.

Ephemeral bindings are removed the first time they are resolved. Scope adds
block-level cleanup on top of that:

	reg := registry.New(registry.Config{})
	_, _ = reg.On("SELECT 1").ReturnOnce(registry.Rows{{"one": 1}})

	_ = reg.Ephemeral(func() error {
		// run code under test
		return nil
	})
	// every ephemeral binding registered before the block, and every binding
	// the block resolved, is gone now.

Registering the same query and parameters twice fails with
sqlreplay.ErrDuplicateQuery; when one registration is ephemeral and the other
is not, sqlreplay.ErrMixedEphemeral is joined in as well.

A Registry is not safe for concurrent use.
*/
package registry
