/*
Package logging offers a client for emitting log entries to the host runtime.

Every replay component logs through a Client: the registry traces lookups, the
cursor records executions, and the host and driver surfaces report what they
served. Entries travel over the same host-call path as the rest of the Tarmac
capabilities, so inside a WebAssembly guest they reach the host logger, and in
an ordinary test binary they are dropped unless a HostCall is injected.

Emission is best-effort. Host failures are swallowed so logging never changes
the outcome of a replayed query.
*/
package logging
