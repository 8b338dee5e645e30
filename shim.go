package heliobridge

import (
	"fmt"

	"github.com/heliosim/helio-bridge/errors"
)

// check is one precondition of an entry point, evaluated before any engine
// work. A nil result means the check passed.
type check func() *errors.Error

// run is the dispatch shim every entry point is an instance of:
//
//	Enter    clear the error record
//	Validate evaluate checks in declared order; first failure short-circuits
//	Invoke   call the engine, catching error returns and panics
//	Succeed  return the engine's value
//	Fail     classify, set the error record, return the sentinel
//
// No failure signal escapes: from the host's perspective the entry point
// is a total function.
func run[T any](e *Env, op string, sentinel T, checks []check, invoke func() (T, error)) T {
	e.lastErr = nil

	for _, c := range checks {
		if err := c(); err != nil {
			e.setError(err)
			return sentinel
		}
	}

	v, berr := safeInvoke(op, invoke)
	if berr != nil {
		e.setError(berr)
		return sentinel
	}
	return v
}

// runVoid dispatches a setter-shaped entry point: no result beyond
// success/failure, sentinel false.
func runVoid(e *Env, op string, checks []check, invoke func() error) bool {
	return run(e, op, false, checks, func() (bool, error) {
		if err := invoke(); err != nil {
			return false, err
		}
		return true, nil
	})
}

// safeInvoke executes the engine call. Returned errors are classified into
// the boundary taxonomy; panics become the catch-all unknown variant.
func safeInvoke[T any](op string, invoke func() (T, error)) (v T, berr *errors.Error) {
	defer func() {
		if r := recover(); r != nil {
			berr = errors.Unclassified(op, fmt.Errorf("panic: %v", r))
		}
	}()

	v, err := invoke()
	if err != nil {
		berr = errors.Classify(op, err)
	}
	return v, berr
}
