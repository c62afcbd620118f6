package sqlreplay

import "errors"

var (
	// ErrDuplicateQuery indicates a binding with the same query and parameters is already registered.
	ErrDuplicateQuery = errors.New("query is already registered")

	// ErrMixedEphemeral is joined with ErrDuplicateQuery when the existing binding and the new one
	// disagree on whether they are ephemeral.
	ErrMixedEphemeral = errors.New("ephemeral and non-ephemeral versions of the same query cannot be active at the same time")

	// ErrMissingConfig is returned when a cursor or helper is created without a registry.
	ErrMissingConfig = errors.New("a registry must be provided")

	// ErrInvalidQuery indicates an empty query reached a host or driver surface.
	ErrInvalidQuery = errors.New("query is invalid")
)
