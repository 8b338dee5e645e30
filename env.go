package heliobridge

import (
	"go.uber.org/zap"

	"github.com/heliosim/helio-bridge/errors"
)

// Env is the per-thread face of the boundary: it holds the last-error
// record and the scratch buffers for list-shaped results. All entry points
// are methods on Env. An Env must not be shared between goroutines.
type Env struct {
	bridge  *Bridge
	lastErr *errors.Error
	uuidBuf []uint32
}

// LastError returns the current error record without clearing it. After a
// successful call the kind is errors.KindNone and the message is empty.
func (e *Env) LastError() (errors.Kind, string) {
	if e.lastErr == nil {
		return errors.KindNone, ""
	}
	return e.lastErr.Kind, e.lastErr.Error()
}

// HasError reports whether the previous call on this Env failed.
func (e *Env) HasError() bool {
	return e.lastErr != nil
}

// ClearError resets the error record to "no error". Every entry point does
// this implicitly on entry; the explicit form exists for hosts that want a
// known-clean slate.
func (e *Env) ClearError() {
	e.lastErr = nil
}

// setError records the first failure of the current call. Later failures
// within the same entry point are suppressed so the record keeps the most
// specific, first-detected error.
func (e *Env) setError(err *errors.Error) {
	if err == nil || e.lastErr != nil {
		return
	}
	e.lastErr = err
	e.bridge.log.Debug("entry point failed",
		zap.String("op", err.Op),
		zap.String("kind", string(err.Kind)),
		zap.Error(err))
}
