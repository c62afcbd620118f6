/*
Package sqlreplay is the root of a record/replay test double for warehouse SQL
clients.

Application code that would normally send SQL to a remote warehouse is pointed
at a replay cursor instead. Tests register canned responses for query text
(optionally narrowed to specific bound parameters), drive the code under test,
and get those responses back without a live connection. Queries are opaque
strings; nothing is parsed or executed.

The root package holds what every component shares: sentinel errors, the
runtime namespace used for host calls, and the default host call.

Packages:

  - registry: bindings, matching rules, ephemeral consumption and scoped cleanup.
  - cursor: the execute/fetch surface, pagination, overrides and the connector.
  - fake: process-wide default instances for quick use in tests.
  - sqlhost: answers Tarmac sql capability host calls from a connector.
  - sqldriver: a database/sql driver backed by a connector.
  - recorder: captures results from a real database into a registry.
  - fixture: loads bindings from YAML, JSON or TOML files.
  - logging, metrics: best-effort host-call based logging and metrics.
*/
package sqlreplay
