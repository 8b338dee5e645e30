package engine

import (
	"errors"
)

// Domain errors raised by engine operations. The boundary layer maps all
// of these to its runtime-failure category.
var (
	// ErrNoSunriseSunset indicates polar day or polar night: the sun never
	// crosses the horizon on the configured date at this latitude.
	ErrNoSunriseSunset = errors.New("engine: no sunrise or sunset on this date at this latitude")

	// ErrUnknownSpecies indicates a tree species absent from the library.
	ErrUnknownSpecies = errors.New("engine: unknown tree species")

	// ErrUnknownTree indicates a tree ID that was never built.
	ErrUnknownTree = errors.New("engine: unknown tree ID")

	// ErrTreeLibrary indicates a malformed or unreadable tree library file.
	ErrTreeLibrary = errors.New("engine: invalid tree library")
)

// Date is a calendar date.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Time is a clock time.
type Time struct {
	Hour   int
	Minute int
	Second int
}

// Context is a simulation world: the calendar state shared by attached
// models and the store of geometric primitives they create. Primitives are
// identified by UUIDs allocated sequentially starting at 0.
type Context struct {
	date     Date
	time     Time
	nextUUID uint32
}

// NewContext creates a context with the engine's default calendar state
// (solar noon, June 1, 2023).
func NewContext() *Context {
	return &Context{
		date: Date{Day: 1, Month: 6, Year: 2023},
		time: Time{Hour: 12},
	}
}

// Date returns the context's calendar date.
func (c *Context) Date() Date { return c.date }

// Time returns the context's clock time.
func (c *Context) Time() Time { return c.time }

// SetDate sets the calendar date. Range checking happens at the boundary;
// the engine trusts its inputs.
func (c *Context) SetDate(d Date) { c.date = d }

// SetTime sets the clock time.
func (c *Context) SetTime(t Time) { c.time = t }

// PrimitiveCount returns the number of primitives created in this context.
func (c *Context) PrimitiveCount() int { return int(c.nextUUID) }

// allocUUIDs reserves n consecutive primitive UUIDs.
func (c *Context) allocUUIDs(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = c.nextUUID
		c.nextUUID++
	}
	return out
}

// dayOfYear returns the ordinal day for the context's date.
func (c *Context) dayOfYear() int {
	cum := [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	doy := cum[c.date.Month-1] + c.date.Day
	if c.date.Month > 2 && isLeap(c.date.Year) {
		doy++
	}
	return doy
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}
