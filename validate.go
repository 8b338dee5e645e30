package heliobridge

import (
	"fmt"

	"github.com/heliosim/helio-bridge/errors"
	"github.com/heliosim/helio-bridge/resource"
)

// Precondition checks, evaluated by the dispatch shim in declared order:
// handles first, then out-pointers, then ranges. Each returns nil on pass.

// checkHandle verifies a handle is non-null, live, and of the right kind.
func (e *Env) checkHandle(op, param string, h Handle, kind resource.Kind) check {
	return func() *errors.Error {
		if h == NullHandle {
			return errors.NullHandle(op, param)
		}
		got, ok := e.bridge.table.Kind(h)
		if !ok {
			return errors.NullHandle(op, param)
		}
		if got != kind {
			return errors.WrongKind(op, param, kind.String())
		}
		return nil
	}
}

// checkOut verifies a caller-supplied output pointer is non-nil.
func checkOut[T any](op, param string, p *T) check {
	return func() *errors.Error {
		if p == nil {
			return errors.NilPointer(op, param)
		}
		return nil
	}
}

// checkRange verifies lo <= v <= hi.
func checkRange(op, param string, v, lo, hi float64) check {
	return func() *errors.Error {
		if v < lo || v > hi {
			return errors.OutOfRange(op, param, v, fmt.Sprintf("[%g, %g]", lo, hi))
		}
		return nil
	}
}

// checkMin verifies v >= lo.
func checkMin(op, param string, v, lo float64) check {
	return func() *errors.Error {
		if v < lo {
			return errors.OutOfRange(op, param, v, fmt.Sprintf(">= %g", lo))
		}
		return nil
	}
}

// checkIntRange verifies lo <= v <= hi for integer parameters.
func checkIntRange(op, param string, v, lo, hi int) check {
	return func() *errors.Error {
		if v < lo || v > hi {
			return errors.OutOfRange(op, param, v, fmt.Sprintf("[%d, %d]", lo, hi))
		}
		return nil
	}
}

// checkIntMin verifies v >= lo for integer parameters.
func checkIntMin(op, param string, v, lo int) check {
	return func() *errors.Error {
		if v < lo {
			return errors.OutOfRange(op, param, v, fmt.Sprintf(">= %d", lo))
		}
		return nil
	}
}

// checkNonEmpty verifies a string parameter is not empty.
func checkNonEmpty(op, param, v string) check {
	return func() *errors.Error {
		if v == "" {
			return errors.New(errors.StageValidate, errors.KindInvalidParameter).
				Op(op).Param(param).Detail("empty string").Build()
		}
		return nil
	}
}

// atmosphereChecks is the shared range policy for the four atmospheric
// parameters of the flux entry points.
func atmosphereChecks(op string, pressure, temperature, humidity, turbidity float64) []check {
	return []check{
		checkMin(op, "pressure", pressure, 0),
		checkMin(op, "temperature", temperature, 0),
		checkRange(op, "humidity", humidity, 0, 1),
		checkMin(op, "turbidity", turbidity, 0),
	}
}
