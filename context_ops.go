package heliobridge

import (
	"github.com/heliosim/helio-bridge/engine"
	"github.com/heliosim/helio-bridge/errors"
	"github.com/heliosim/helio-bridge/resource"
)

// destroy is the shared teardown path. Destroying the null handle is a
// no-op that never faults and never sets an error; a stale handle is
// indistinguishable from null and is likewise a no-op. A live handle of
// the wrong kind is a caller bug and reports InvalidParameter.
func (e *Env) destroy(op string, h Handle, kind resource.Kind) {
	e.lastErr = nil
	if h == NullHandle {
		return
	}
	got, ok := e.bridge.table.Kind(h)
	if !ok {
		return
	}
	if got != kind {
		e.setError(errors.WrongKind(op, "handle", kind.String()))
		return
	}
	e.bridge.table.Remove(h)
}

// ctxOf resolves a context handle inside the invoke stage.
func ctxOf(e *Env, op string, h Handle) (*engine.Context, error) {
	c, ok := resource.Of[*engine.Context](e.bridge.table, h, resource.KindContext)
	if !ok {
		return nil, errors.NullHandle(op, "context")
	}
	return c, nil
}

// CreateContext allocates a simulation context and returns its handle.
// Sentinel: NullHandle.
func (e *Env) CreateContext() Handle {
	const op = "CreateContext"
	return run(e, op, NullHandle, nil, func() (Handle, error) {
		return e.bridge.table.Insert(resource.KindContext, engine.NewContext()), nil
	})
}

// DestroyContext releases a context. The caller must have destroyed the
// objects attached to it first; handles attached to a destroyed context
// are undefined.
func (e *Env) DestroyContext(h Handle) {
	e.destroy("DestroyContext", h, resource.KindContext)
}

// ContextPrimitiveCount returns the number of primitives created in a
// context. Sentinel: 0.
func (e *Env) ContextPrimitiveCount(h Handle) int {
	const op = "ContextPrimitiveCount"
	checks := []check{
		e.checkHandle(op, "context", h, resource.KindContext),
	}
	return run(e, op, 0, checks, func() (int, error) {
		c, err := ctxOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return c.PrimitiveCount(), nil
	})
}

// SetDate sets a context's calendar date. Sentinel: false.
func (e *Env) SetDate(h Handle, day, month, year int) bool {
	const op = "SetDate"
	checks := []check{
		e.checkHandle(op, "context", h, resource.KindContext),
		checkIntRange(op, "day", day, 1, 31),
		checkIntRange(op, "month", month, 1, 12),
	}
	return runVoid(e, op, checks, func() error {
		c, err := ctxOf(e, op, h)
		if err != nil {
			return err
		}
		c.SetDate(engine.Date{Day: day, Month: month, Year: year})
		return nil
	})
}

// SetTime sets a context's clock time. Sentinel: false.
func (e *Env) SetTime(h Handle, hour, minute, second int) bool {
	const op = "SetTime"
	checks := []check{
		e.checkHandle(op, "context", h, resource.KindContext),
		checkIntRange(op, "hour", hour, 0, 23),
		checkIntRange(op, "minute", minute, 0, 59),
		checkIntRange(op, "second", second, 0, 59),
	}
	return runVoid(e, op, checks, func() error {
		c, err := ctxOf(e, op, h)
		if err != nil {
			return err
		}
		c.SetTime(engine.Time{Hour: hour, Minute: minute, Second: second})
		return nil
	})
}

// GetDate writes a context's calendar date through out. Sentinel: false.
func (e *Env) GetDate(h Handle, out *Date) bool {
	const op = "GetDate"
	checks := []check{
		e.checkHandle(op, "context", h, resource.KindContext),
		checkOut(op, "out", out),
	}
	return runVoid(e, op, checks, func() error {
		c, err := ctxOf(e, op, h)
		if err != nil {
			return err
		}
		d := c.Date()
		out.Day, out.Month, out.Year = d.Day, d.Month, d.Year
		return nil
	})
}

// GetTime writes a context's clock time through out. Sentinel: false.
func (e *Env) GetTime(h Handle, out *ClockTime) bool {
	const op = "GetTime"
	checks := []check{
		e.checkHandle(op, "context", h, resource.KindContext),
		checkOut(op, "out", out),
	}
	return runVoid(e, op, checks, func() error {
		c, err := ctxOf(e, op, h)
		if err != nil {
			return err
		}
		t := c.Time()
		out.Hour, out.Minute, out.Second = t.Hour, t.Minute, t.Second
		return nil
	})
}
