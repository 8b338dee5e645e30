// Package engine is the wrapped simulation library: a simulation context
// holding calendar state and geometry, a solar position model (sun angles,
// sunrise/sunset, clear-sky radiation fluxes), and a procedural tree
// generator producing primitive geometry in a context.
//
// The boundary layer in the root package treats this package as an opaque
// collaborator: every method either succeeds or returns an ordinary Go
// error, which the boundary classifies into its own taxonomy. Nothing in
// this package knows about handles, sentinels, or error records.
//
// Concurrency: objects in this package are not safe for concurrent use.
// Callers sharing a Context or generator across goroutines must provide
// their own synchronization.
package engine
