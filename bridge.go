package heliobridge

import (
	"go.uber.org/zap"

	"github.com/heliosim/helio-bridge/engine"
	"github.com/heliosim/helio-bridge/resource"
)

// Handle is an opaque capability token denoting an engine-owned object.
type Handle = resource.Handle

// NullHandle is the documented sentinel for handle-returning entry points.
const NullHandle = resource.Null

// Vec3 is a fixed-size coordinate triple written through caller-supplied
// storage.
type Vec3 struct {
	X, Y, Z float64
}

// Date is a calendar date written through caller-supplied storage.
type Date struct {
	Day, Month, Year int
}

// ClockTime is an hour/minute/second triple written through
// caller-supplied storage.
type ClockTime struct {
	Hour, Minute, Second int
}

// Bridge owns the state shared by all Envs: the handle table and the
// logger. One Bridge typically lives for the process.
type Bridge struct {
	table *resource.Table
	log   *zap.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger installs a logger for boundary and engine diagnostics.
// Failures are logged at Debug; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates a Bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		table: resource.NewTable(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	engine.SetLogger(b.log)
	return b
}

// Env returns a per-thread view of the bridge. Each host thread must use
// its own Env; Envs share the bridge's handle table.
func (b *Bridge) Env() *Env {
	return &Env{bridge: b}
}

// Handles returns the number of live handles, for diagnostics.
func (b *Bridge) Handles() int {
	return b.table.Len()
}

// Close destroys every live handle. Outstanding handles become stale.
func (b *Bridge) Close() {
	b.table.Clear()
}
